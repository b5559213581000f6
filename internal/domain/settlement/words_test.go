package settlement

import "testing"

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0,00", "PESOS CERO CON 00/100"},
		{"1,00", "PESOS UNO CON 00/100"},
		{"15,50", "PESOS QUINCE CON 50/100"},
		{"21,00", "PESOS VEINTIUNO CON 00/100"},
		{"100,00", "PESOS CIEN CON 00/100"},
		{"101,00", "PESOS CIENTO UNO CON 00/100"},
		{"345,67", "PESOS TRESCIENTOS CUARENTA Y CINCO CON 67/100"},
		{"500,00", "PESOS QUINIENTOS CON 00/100"},
		{"1.000,00", "PESOS MIL CON 00/100"},
		{"21.000,00", "PESOS VEINTIUN MIL CON 00/100"},
		{"110.496,60", "PESOS CIENTO DIEZ MIL CUATROCIENTOS NOVENTA Y SEIS CON 60/100"},
		{"1.000.000,00", "PESOS UN MILLON CON 00/100"},
		{"2.500.000,99", "PESOS DOS MILLONES QUINIENTOS MIL CON 99/100"},
		{"-1.234,50", "PESOS MENOS MIL DOSCIENTOS TREINTA Y CUATRO CON 50/100"},
	}
	for _, tc := range cases {
		if got := AmountInWords(tc.in); got != tc.want {
			t.Errorf("AmountInWords(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
