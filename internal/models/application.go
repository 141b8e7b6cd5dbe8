// internal/models/application.go
package models

// ApplicationForm is the caller-supplied payload of a residential-certificate
// application. All string fields are free text owned by the caller; gender and
// nationality are small closed integer codes mapped to labels by the frontend.
// The registry stores the form as opaque data and performs no content
// validation (field-format checks are a frontend concern).
type ApplicationForm struct {
	// Personal
	FullName      string  `json:"fullName" gorm:"size:255"`
	DateOfBirth   string  `json:"dateOfBirth" gorm:"size:50"`
	Gender        int     `json:"gender"`
	PlaceOfBirth  string  `json:"placeOfBirth" gorm:"size:255"`
	Nationality   int     `json:"nationality"`
	MaritalStatus *string `json:"maritalStatus,omitempty" gorm:"size:50"`

	// Contact
	PhoneNumber string `json:"phoneNumber" gorm:"size:50"`
	Email       string `json:"email" gorm:"size:255"`
	IDNumber    string `json:"idNumber" gorm:"size:100;column:id_number"`

	// Address
	Address            string `json:"address" gorm:"type:text"`
	CurrentAddress     string `json:"currentAddress" gorm:"type:text"`
	StartOfResidency   string `json:"startOfResidency" gorm:"size:50"`
	PropertyOwner      string `json:"propertyOwner" gorm:"size:255"`
	RelationToLandlord string `json:"relationToLandlord" gorm:"size:255"`
	IsHomeowner        bool   `json:"isHomeowner"`

	// Professional
	Profession        string `json:"profession" gorm:"size:255"`
	ProfessionAddress string `json:"professionAddress" gorm:"type:text"`
	ProfessionPhone   string `json:"professionPhone" gorm:"size:50"`
	HasVehicle        bool   `json:"hasVehicle"`

	// Renewal metadata
	IsContractRenewal           bool    `json:"isContractRenewal"`
	PreviousResidenceCertNumber *string `json:"previousResidenceCertNumber,omitempty" gorm:"size:100"`
	PreviousApplications        int     `json:"previousApplications"`
}

// Application is a persisted certificate-intake record. The application number
// is the primary key, unique for the lifetime of the registry and strictly
// increasing in insertion order. The owning principal never changes.
type Application struct {
	ApplicationNumber int64             `json:"applicationNumber" gorm:"primaryKey;autoIncrement:false"`
	Principal         string            `json:"principal" gorm:"size:255;not null;index"`
	Status            ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	ApplicationForm   `gorm:"embedded"`
	Created           Millis `json:"created" gorm:"not null"`
	LastUpdated       Millis `json:"lastUpdated" gorm:"not null"`
}

// ApplicationCounter holds the next application number. It is locked and
// incremented inside the same transaction as the insert so two concurrent
// submissions can never observe the same value and a failed insert burns no
// number.
type ApplicationCounter struct {
	ID   int   `gorm:"primaryKey"`
	Next int64 `gorm:"not null"`
}

// FirstApplicationNumber is the value assigned to the first ever insert.
const FirstApplicationNumber int64 = 1
