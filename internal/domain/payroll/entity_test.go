package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestRecompute(t *testing.T) {
	p := Payroll{
		BasicSalary: dec("50000"),
		Allowances: Allowances{
			Medical:   dec("2000"),
			Transport: dec("1500"),
			Others:    dec("500.50"),
		},
		Deductions: Deductions{
			PF:            dec("1800"),
			Loan:          dec("3000"),
			AdvanceSalary: dec("1000"),
			Tax:           dec("4200"),
			Others:        dec("0.50"),
		},
	}

	p.Recompute()

	if got, want := p.GrossSalary.StringFixed(2), "54000.50"; got != want {
		t.Errorf("GrossSalary = %s, want %s", got, want)
	}
	if got, want := p.NetPay.StringFixed(2), "44000.00"; got != want {
		t.Errorf("NetPay = %s, want %s", got, want)
	}
}

func TestRecomputeZeroBlocks(t *testing.T) {
	p := Payroll{BasicSalary: dec("30000")}
	p.Recompute()

	if !p.GrossSalary.Equal(p.BasicSalary) {
		t.Errorf("GrossSalary = %s, want %s", p.GrossSalary, p.BasicSalary)
	}
	if !p.NetPay.Equal(p.BasicSalary) {
		t.Errorf("NetPay = %s, want %s", p.NetPay, p.BasicSalary)
	}
}

func TestValidMonth(t *testing.T) {
	for _, name := range []string{"January", "June", "December"} {
		if !ValidMonth(name) {
			t.Errorf("ValidMonth(%q) = false", name)
		}
	}
	for _, name := range []string{"", "Jun", "Smarch"} {
		if ValidMonth(name) {
			t.Errorf("ValidMonth(%q) = true", name)
		}
	}
}
