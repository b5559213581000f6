package settlement

import (
	"fmt"
	"strings"

	"sueldos/internal/moneyfmt"
)

// Spanish cardinals, unaccented uppercase as printed on the recibo.
var wordUnits = [...]string{
	"CERO", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE",
	"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISEIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE",
	"VEINTE", "VEINTIUNO", "VEINTIDOS", "VEINTITRES", "VEINTICUATRO", "VEINTICINCO", "VEINTISEIS", "VEINTISIETE", "VEINTIOCHO", "VEINTINUEVE",
}

var wordTens = [...]string{"", "", "", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}

var wordHundreds = [...]string{"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS"}

// AmountInWords spells an Argentine-format amount for the recibo
// acknowledgment line, e.g. "PESOS CIENTO DIEZ MIL CUATROCIENTOS NOVENTA
// Y SEIS CON 60/100". Cents always print as NN/100.
func AmountInWords(amount string) string {
	d := moneyfmt.Parse(amount)
	negative := d.IsNegative()
	d = d.Abs().Round(2)
	integer := d.IntPart()
	cents := d.Mul(hundred).IntPart() % 100
	words := spellCardinal(integer)
	if negative {
		words = "MENOS " + words
	}
	return fmt.Sprintf("PESOS %s CON %02d/100", words, cents)
}

func spellCardinal(n int64) string {
	if n == 0 {
		return "CERO"
	}
	var parts []string
	millions := n / 1_000_000
	rest := n % 1_000_000
	switch {
	case millions == 1:
		parts = append(parts, "UN MILLON")
	case millions > 1:
		parts = append(parts, apocope(spellBelowMillion(millions))+" MILLONES")
	}
	if rest > 0 {
		parts = append(parts, spellBelowMillion(rest))
	}
	return strings.Join(parts, " ")
}

func spellBelowMillion(n int64) string {
	thousands := n / 1000
	rest := n % 1000
	var parts []string
	switch {
	case thousands == 1:
		parts = append(parts, "MIL")
	case thousands > 1:
		parts = append(parts, apocope(spellBelowThousand(thousands))+" MIL")
	}
	if rest > 0 {
		parts = append(parts, spellBelowThousand(rest))
	}
	return strings.Join(parts, " ")
}

func spellBelowThousand(n int64) string {
	if n == 100 {
		return "CIEN"
	}
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, wordHundreds[h])
	}
	if rest := n % 100; rest > 0 {
		parts = append(parts, spellBelowHundred(rest))
	}
	return strings.Join(parts, " ")
}

func spellBelowHundred(n int64) string {
	if n < 30 {
		return wordUnits[n]
	}
	tens := wordTens[n/10]
	if n%10 == 0 {
		return tens
	}
	return tens + " Y " + wordUnits[n%10]
}

// apocope shortens a trailing UNO before MIL and MILLONES: "veintiuno mil"
// is wrong, "veintiun mil" is right.
func apocope(s string) string {
	if strings.HasSuffix(s, "UNO") {
		return strings.TrimSuffix(s, "O")
	}
	return s
}
