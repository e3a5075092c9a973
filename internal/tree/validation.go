package tree

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

func validatePlantInput(in domain.PlantTreeInput) error {
	switch {
	case utf8.RuneCountInString(strings.TrimSpace(in.Name)) > MaxNameLength:
		return fmt.Errorf("%w: tree name exceeds %d characters", domain.ErrInvalidInput, MaxNameLength)
	case utf8.RuneCountInString(in.Species) > MaxSpeciesLength:
		return fmt.Errorf("%w: species exceeds %d characters", domain.ErrInvalidInput, MaxSpeciesLength)
	case utf8.RuneCountInString(in.Capsule) > MaxCapsuleLength:
		return fmt.Errorf("%w: time capsule exceeds %d characters", domain.ErrInvalidInput, MaxCapsuleLength)
	case len(in.PhotoRefs) > MaxPhotoRefs:
		return fmt.Errorf("%w: at most %d photos", domain.ErrInvalidInput, MaxPhotoRefs)
	}
	for _, ref := range in.PhotoRefs {
		if strings.TrimSpace(ref) == "" {
			return fmt.Errorf("%w: empty photo reference", domain.ErrInvalidInput)
		}
	}
	return validateSize(in.Height, in.Diameter)
}

func validateMeasurementInput(in domain.MeasurementInput) error {
	if !domain.ValidHealthStatuses[in.HealthStatus] {
		return fmt.Errorf("%w: unknown health status %q", domain.ErrInvalidMeasurement, in.HealthStatus)
	}
	if utf8.RuneCountInString(in.Note) > MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", domain.ErrInvalidMeasurement, MaxNoteLength)
	}
	if in.PhotoRef != nil && strings.TrimSpace(*in.PhotoRef) == "" {
		return fmt.Errorf("%w: empty photo reference", domain.ErrInvalidMeasurement)
	}
	if err := validateSize(in.Height, in.Diameter); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidMeasurement, err)
	}
	return nil
}

func validateSize(height, diameter float64) error {
	if math.IsNaN(height) || height < 0 || height > MaxHeightCM {
		return fmt.Errorf("%w: height must be between 0 and %d cm", domain.ErrInvalidInput, MaxHeightCM)
	}
	if math.IsNaN(diameter) || diameter < 0 || diameter > MaxDiameterCM {
		return fmt.Errorf("%w: diameter must be between 0 and %d cm", domain.ErrInvalidInput, MaxDiameterCM)
	}
	return nil
}
