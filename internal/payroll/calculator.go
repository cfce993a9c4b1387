package payroll

import (
	"go-hradmin/internal/advance"
	"go-hradmin/internal/attendance"
	"go-hradmin/internal/salary"
)

// Computation is the full breakdown of one month's pay. All fields are
// plain float64 arithmetic with no rounding.
type Computation struct {
	WorkingDays   int
	PresentDays   int
	LeaveDays     int
	OvertimeHours float64

	FixedSalary       float64
	BasicSalary       float64
	HRA               float64
	Allowances        float64
	VariableComponent float64

	AdjustedSalary   float64
	OvertimePay      float64
	GrossSalary      float64
	PFDeduction      float64
	ESIDeduction     float64
	TDSDeduction     float64
	AdvanceDeduction float64
	NetSalary        float64
}

// Calculate prorates the fixed salary by attendance, adds overtime and
// fixed components, then applies PF, ESI, TDS and advance recoveries.
//
// PF applies on basic once gross reaches the PF threshold. ESI applies
// on gross strictly below the ESI threshold; at exactly the threshold
// the employee is exempt.
func Calculate(
	structure salary.SalaryStructure,
	summary attendance.MonthlySummary,
	settings PayrollSettings,
	advances []advance.SalaryAdvance,
) Computation {
	c := Computation{
		WorkingDays:   summary.WorkingDays,
		PresentDays:   summary.PresentDays,
		LeaveDays:     summary.LeaveDays,
		OvertimeHours: summary.OvertimeHours,

		FixedSalary:       structure.FixedSalary,
		BasicSalary:       structure.BasicSalary,
		HRA:               structure.HRA,
		Allowances:        structure.Allowances,
		VariableComponent: structure.VariableComponent,
	}

	dailySalary := structure.FixedSalary / float64(settings.StandardWorkingDays)
	c.AdjustedSalary = dailySalary * float64(summary.PresentDays)

	hourlyRate := structure.FixedSalary / (float64(settings.StandardWorkingDays) * settings.StandardHours)
	c.OvertimePay = hourlyRate * summary.OvertimeHours * settings.OvertimeMultiplier

	c.GrossSalary = c.AdjustedSalary + structure.HRA + structure.Allowances +
		structure.VariableComponent + c.OvertimePay

	if c.GrossSalary >= settings.PFGrossThreshold {
		c.PFDeduction = structure.BasicSalary * settings.PFRate
	}
	if c.GrossSalary < settings.ESIGrossThreshold {
		c.ESIDeduction = c.GrossSalary * settings.ESIRate
	}
	c.TDSDeduction = c.GrossSalary * settings.TDSRate

	for _, a := range advances {
		installment := a.MonthlyDeduction
		if installment > a.RemainingAmount {
			installment = a.RemainingAmount
		}
		c.AdvanceDeduction += installment
	}

	c.NetSalary = c.GrossSalary - (c.PFDeduction + c.ESIDeduction + c.TDSDeduction + c.AdvanceDeduction)
	return c
}
