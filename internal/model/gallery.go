package model

import "time"

// CurrentEventVersion is the only event version open for new uploads.
// Older versions are read-only archives.
const CurrentEventVersion = "PM Connect 3.0"

const MaxPhotosPerEmployee = 2

type GalleryPhoto struct {
	PhotoID         string `gorm:"primaryKey"`
	EmployeeID      string `gorm:"not null;index"`
	ImageBase64     string `gorm:"not null"`
	EventVersion    string `gorm:"not null;index"`
	UploadTimestamp time.Time
}

type GalleryPhotoDTO struct {
	PhotoID         string    `json:"photoId"`
	EmployeeID      string    `json:"employeeId"`
	ImageBase64     string    `json:"imageBase64"`
	EventVersion    string    `json:"eventVersion"`
	UploadTimestamp time.Time `json:"uploadTimestamp"`
}

func (p *GalleryPhoto) DTO() *GalleryPhotoDTO {
	if p == nil {
		return nil
	}

	return &GalleryPhotoDTO{
		PhotoID:         p.PhotoID,
		EmployeeID:      p.EmployeeID,
		ImageBase64:     p.ImageBase64,
		EventVersion:    p.EventVersion,
		UploadTimestamp: p.UploadTimestamp,
	}
}
