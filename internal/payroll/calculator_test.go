package payroll

import (
	"testing"

	"go-hradmin/internal/advance"
	"go-hradmin/internal/attendance"
	"go-hradmin/internal/salary"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_FullMonth(t *testing.T) {
	structure := salary.SalaryStructure{
		FixedSalary:       44000,
		BasicSalary:       22000,
		HRA:               8000,
		Allowances:        3000,
		VariableComponent: 1000,
	}
	summary := attendance.MonthlySummary{
		WorkingDays:   22,
		PresentDays:   22,
		OvertimeHours: 4,
	}

	c := Calculate(structure, summary, DefaultSettings(), nil)

	// dailySalary 2000, full attendance keeps the fixed salary whole.
	assert.InDelta(t, 44000, c.AdjustedSalary, 1e-9)
	// hourly rate 250, 4h at 1.5x.
	assert.InDelta(t, 1500, c.OvertimePay, 1e-9)
	assert.InDelta(t, 57500, c.GrossSalary, 1e-9)
	// gross above 15000: PF on basic at 12%.
	assert.InDelta(t, 2640, c.PFDeduction, 1e-9)
	// gross above the ESI ceiling: exempt.
	assert.Zero(t, c.ESIDeduction)
	assert.InDelta(t, 5750, c.TDSDeduction, 1e-9)
	assert.InDelta(t, 57500-2640-5750, c.NetSalary, 1e-9)
}

func TestCalculate_ProratedByPresentDays(t *testing.T) {
	structure := salary.SalaryStructure{
		FixedSalary: 22000,
		BasicSalary: 11000,
	}
	summary := attendance.MonthlySummary{
		WorkingDays: 22,
		PresentDays: 11,
	}

	c := Calculate(structure, summary, DefaultSettings(), nil)

	assert.InDelta(t, 11000, c.AdjustedSalary, 1e-9)
	assert.InDelta(t, 11000, c.GrossSalary, 1e-9)
	// Below the PF gross threshold: no PF.
	assert.Zero(t, c.PFDeduction)
	// Below the ESI ceiling: 0.75% of gross.
	assert.InDelta(t, 82.5, c.ESIDeduction, 1e-9)
	assert.InDelta(t, 1100, c.TDSDeduction, 1e-9)
}

func TestCalculate_ESIBoundary(t *testing.T) {
	settings := DefaultSettings()
	settings.TDSRate = 0

	// Gross lands exactly on the ESI threshold: exempt.
	atThreshold := salary.SalaryStructure{FixedSalary: 21000, BasicSalary: 10500}
	c := Calculate(atThreshold, attendance.MonthlySummary{WorkingDays: 22, PresentDays: 22}, settings, nil)
	assert.InDelta(t, 21000, c.GrossSalary, 1e-9)
	assert.Zero(t, c.ESIDeduction)

	// One rupee under the threshold: ESI applies.
	justUnder := salary.SalaryStructure{FixedSalary: 20999, BasicSalary: 10500}
	c = Calculate(justUnder, attendance.MonthlySummary{WorkingDays: 22, PresentDays: 22}, settings, nil)
	assert.InDelta(t, 20999*0.0075, c.ESIDeduction, 1e-9)
}

func TestCalculate_AdvanceDeductions(t *testing.T) {
	structure := salary.SalaryStructure{FixedSalary: 44000, BasicSalary: 22000}
	summary := attendance.MonthlySummary{WorkingDays: 22, PresentDays: 22}

	advances := []advance.SalaryAdvance{
		{MonthlyDeduction: 2000, RemainingAmount: 10000},
		// Installment larger than the balance: capped at the balance.
		{MonthlyDeduction: 3000, RemainingAmount: 500},
	}

	c := Calculate(structure, summary, DefaultSettings(), advances)
	assert.InDelta(t, 2500, c.AdvanceDeduction, 1e-9)
	expectedNet := c.GrossSalary - c.PFDeduction - c.ESIDeduction - c.TDSDeduction - 2500
	assert.InDelta(t, expectedNet, c.NetSalary, 1e-9)
}

func TestCalculate_Idempotent(t *testing.T) {
	structure := salary.SalaryStructure{FixedSalary: 30000, BasicSalary: 15000, HRA: 5000}
	summary := attendance.MonthlySummary{WorkingDays: 23, PresentDays: 20, OvertimeHours: 6}

	first := Calculate(structure, summary, DefaultSettings(), nil)
	second := Calculate(structure, summary, DefaultSettings(), nil)
	assert.Equal(t, first, second)
}

func TestCalculate_NegativeAbsentDaysStillComputes(t *testing.T) {
	// More present days than working days inflates the adjusted salary
	// past the fixed salary; the arithmetic does not clamp.
	structure := salary.SalaryStructure{FixedSalary: 22000, BasicSalary: 11000}
	summary := attendance.MonthlySummary{WorkingDays: 22, PresentDays: 25, AbsentDays: -3}

	c := Calculate(structure, summary, DefaultSettings(), nil)
	assert.InDelta(t, 25000, c.AdjustedSalary, 1e-9)
}
