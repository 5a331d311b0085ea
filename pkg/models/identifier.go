package models

import (
	"regexp"
	"strings"
	"time"
)

var (
	cidPattern = regexp.MustCompile(`^[A-Z]{4,8}[0-9]{12}$`)
	norPattern = regexp.MustCompile(`^[A-Z]{4}[0-9]{2}[0-9]{5}[A-Z]$`)
	eliPattern = regexp.MustCompile(`^eli/[a-zA-Z0-9_\-/:.]+$`)
)

// IsCID informa se s tem o formato de um identificador Légifrance: prefixo
// de quatro a oito letras e doze dígitos (LEGIARTI000006419292,
// LEGISCTA000006089696, JURITEXT000037999394...).
func IsCID(s string) bool { return cidPattern.MatchString(s) }

// IsNOR informa se s tem o formato de um número NOR (ex.: JUSC1502013L).
func IsNOR(s string) bool { return norPattern.MatchString(s) }

// IsELI informa se s é um caminho ELI (European Legislation Identifier).
func IsELI(s string) bool { return eliPattern.MatchString(s) }

// IsDate informa se s está no formato AAAA-MM-DD.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// HasPrefix informa se o identificador pertence à família do prefixo.
func HasPrefix(id, prefix string) bool {
	return prefix != "" && strings.HasPrefix(id, prefix)
}
