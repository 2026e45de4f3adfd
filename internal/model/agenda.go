package model

import "time"

// Agenda is a logical singleton: each upload replaces the previous one.
type Agenda struct {
	AgendaID        string `gorm:"primaryKey"`
	AgendaTitle     string `gorm:"not null;default:''"`
	PdfBase64       string `gorm:"not null"`
	UploadTimestamp time.Time
}

type AgendaDTO struct {
	AgendaID        string    `json:"agendaId"`
	AgendaTitle     string    `json:"agendaTitle"`
	PdfBase64       string    `json:"pdfBase64"`
	UploadTimestamp time.Time `json:"uploadTimestamp"`
}

func (a *Agenda) DTO() *AgendaDTO {
	if a == nil {
		return nil
	}

	return &AgendaDTO{
		AgendaID:        a.AgendaID,
		AgendaTitle:     a.AgendaTitle,
		PdfBase64:       a.PdfBase64,
		UploadTimestamp: a.UploadTimestamp,
	}
}
