package service

import (
	"fmt"

	"gorm.io/gorm"

	"hospital-care-server/internal/models"
)

// CatalogService maintains the priced catalogs of tests and medications the
// consultation calculator draws from.
type CatalogService struct {
	DB *gorm.DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListTests returns every test on offer.
func (s *CatalogService) ListTests() ([]models.Test, error) {
	var tests []models.Test
	err := s.DB.Order("test_name asc").Find(&tests).Error
	return tests, err
}

// AddTest creates a test with its price.
func (s *CatalogService) AddTest(name string, price float64) (*models.Test, error) {
	if price < 0 {
		return nil, fmt.Errorf("%w: test price cannot be negative", ErrValidation)
	}
	test := models.Test{TestName: name, TestPrice: price}
	if err := s.DB.Create(&test).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

// UpdateTest replaces a test's name and price. Bills already issued keep
// their recorded prices.
func (s *CatalogService) UpdateTest(testID, name string, price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: test price cannot be negative", ErrValidation)
	}
	var test models.Test
	if err := s.DB.First(&test, "id = ?", testID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: test %s", ErrNotFound, testID)
		}
		return err
	}
	test.TestName = name
	test.TestPrice = price
	return s.DB.Save(&test).Error
}

// ListMedications returns every medication on offer.
func (s *CatalogService) ListMedications() ([]models.Medication, error) {
	var medications []models.Medication
	err := s.DB.Order("medication_name asc").Find(&medications).Error
	return medications, err
}

// AddMedication creates a medication with its unit price.
func (s *CatalogService) AddMedication(name string, pricePerUnit float64) (*models.Medication, error) {
	if pricePerUnit < 0 {
		return nil, fmt.Errorf("%w: medication price cannot be negative", ErrValidation)
	}
	medication := models.Medication{MedicationName: name, PricePerUnit: pricePerUnit}
	if err := s.DB.Create(&medication).Error; err != nil {
		return nil, err
	}
	return &medication, nil
}

// UpdateMedication replaces a medication's name and unit price.
func (s *CatalogService) UpdateMedication(medicationID, name string, pricePerUnit float64) error {
	if pricePerUnit < 0 {
		return fmt.Errorf("%w: medication price cannot be negative", ErrValidation)
	}
	var medication models.Medication
	if err := s.DB.First(&medication, "id = ?", medicationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: medication %s", ErrNotFound, medicationID)
		}
		return err
	}
	medication.MedicationName = name
	medication.PricePerUnit = pricePerUnit
	return s.DB.Save(&medication).Error
}

// ListSpecializations returns every recognized specialty.
func (s *CatalogService) ListSpecializations() ([]models.Specialization, error) {
	var specializations []models.Specialization
	err := s.DB.Order("specialization_name asc").Find(&specializations).Error
	return specializations, err
}

// AddSpecialization creates a specialty. Names are unique.
func (s *CatalogService) AddSpecialization(name string) (*models.Specialization, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: specialization name is required", ErrValidation)
	}
	var count int64
	if err := s.DB.Model(&models.Specialization{}).
		Where("specialization_name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: specialization already exists", ErrValidation)
	}
	specialization := models.Specialization{SpecializationName: name}
	if err := s.DB.Create(&specialization).Error; err != nil {
		return nil, err
	}
	return &specialization, nil
}
