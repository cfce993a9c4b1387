package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is a JSON-encoded string array column. Departments,
// designations and roles all store their permission sets this way.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// User roles. Role and department/designation jointly gate permissions;
// master_admin bypasses the permission tables entirely.
const (
	RoleMasterAdmin = "master_admin"
	RoleAdmin       = "admin"
	RoleEmployee    = "employee"
)

// Permission catalog. Dotted resource.action names.
const (
	PermUsersView      = "users.view"
	PermUsersCreate    = "users.create"
	PermUsersEdit      = "users.edit"
	PermUsersDelete    = "users.delete"
	PermDeptView       = "departments.view"
	PermDeptManage     = "departments.manage"
	PermAttendView     = "attendance.view"
	PermAttendManage   = "attendance.manage"
	PermAttendPolicy   = "attendance.policy"
	PermLeaveView      = "leaves.view"
	PermLeaveApply     = "leaves.apply"
	PermLeaveApprove   = "leaves.approve"
	PermPayrollView    = "payroll.view"
	PermPayrollRun     = "payroll.process"
	PermPayrollApprove = "payroll.approve"
	PermPayrollPay     = "payroll.pay"
	PermSalaryView     = "salary.view"
	PermSalaryManage   = "salary.manage"
	PermAdvanceView    = "advances.view"
	PermAdvanceGrant   = "advances.approve"
	PermCRMView        = "crm.view"
	PermCRMManage      = "crm.manage"
	PermRolesManage    = "roles.manage"
	PermPermsAssign    = "permissions.assign"
	PermSysSettings    = "system.settings"
	PermSysBackup      = "system.backup"
	PermSysAudit       = "system.audit"
)

// AllPermissions is the full catalog a master admin resolves to.
var AllPermissions = []string{
	PermUsersView,
	PermUsersCreate,
	PermUsersEdit,
	PermUsersDelete,
	PermDeptView,
	PermDeptManage,
	PermAttendView,
	PermAttendManage,
	PermAttendPolicy,
	PermLeaveView,
	PermLeaveApply,
	PermLeaveApprove,
	PermPayrollView,
	PermPayrollRun,
	PermPayrollApprove,
	PermPayrollPay,
	PermSalaryView,
	PermSalaryManage,
	PermAdvanceView,
	PermAdvanceGrant,
	PermCRMView,
	PermCRMManage,
	PermRolesManage,
	PermPermsAssign,
	PermSysSettings,
	PermSysBackup,
	PermSysAudit,
}

// SystemPermissions are always present for master_admin users,
// independent of department and designation tables.
var SystemPermissions = []string{
	PermSysSettings,
	PermSysBackup,
	PermSysAudit,
	PermUsersDelete,
	PermPermsAssign,
}
