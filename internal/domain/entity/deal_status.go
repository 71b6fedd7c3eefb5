package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DealStatus etapa del pipeline de licencias. Enumeración cerrada; toda entrada pasa por NormalizeDealStatus.
type DealStatus string

const (
	StatusNewRequest      DealStatus = "new_request"
	StatusPendingApproval DealStatus = "pending_approval"
	StatusQuoted          DealStatus = "quoted"
	StatusUseConfirmed    DealStatus = "use_confirmed"
	StatusBeingDrafted    DealStatus = "being_drafted"
	StatusOutForSignature DealStatus = "out_for_signature"
	StatusPaymentReceived DealStatus = "payment_received"
	StatusCompleted       DealStatus = "completed"
	StatusNotUsed         DealStatus = "not_used"
)

// PipelineStatuses orden canónico del pipeline; not_used va al final como salida lateral.
var PipelineStatuses = []DealStatus{
	StatusNewRequest,
	StatusPendingApproval,
	StatusQuoted,
	StatusUseConfirmed,
	StatusBeingDrafted,
	StatusOutForSignature,
	StatusPaymentReceived,
	StatusCompleted,
	StatusNotUsed,
}

// NormalizeDealStatus acepta variantes con espacios, guiones o mayúsculas ("New Request", "new-request")
// y devuelve el valor canónico. ok=false si no pertenece a la enumeración.
func NormalizeDealStatus(s string) (DealStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.Join(strings.FieldsFunc(key, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "_")
	st := DealStatus(key)
	if st.Valid() {
		return st, true
	}
	return "", false
}

// Valid indica si el valor ya es canónico.
func (s DealStatus) Valid() bool {
	for _, st := range PipelineStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Label "new_request" -> "New Request". Funciona con valores sin normalizar.
func (s DealStatus) Label() string {
	if st, ok := NormalizeDealStatus(string(s)); ok {
		s = st
	}
	// cases.Caser guarda estado: uno por llamada.
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

// StatusLabel atajo para vistas y exportaciones que reciben el estado como texto.
func StatusLabel(s string) string {
	return DealStatus(s).Label()
}

// IsOpen true mientras el deal no esté cerrado (completado o descartado).
func (s DealStatus) IsOpen() bool {
	return s != StatusCompleted && s != StatusNotUsed
}

// BallparkBracket rango orientativo de tarifa antes de cotizar.
type BallparkBracket string

const (
	BallparkUnder1K BallparkBracket = "under_1k"
	Ballpark1K5K    BallparkBracket = "1k_5k"
	Ballpark5K10K   BallparkBracket = "5k_10k"
	Ballpark10K25K  BallparkBracket = "10k_25k"
	Ballpark25K50K  BallparkBracket = "25k_50k"
	BallparkOver50K BallparkBracket = "over_50k"
)

func (b BallparkBracket) Valid() bool {
	switch b {
	case BallparkUnder1K, Ballpark1K5K, Ballpark5K10K, Ballpark10K25K, Ballpark25K50K, BallparkOver50K:
		return true
	}
	return false
}
