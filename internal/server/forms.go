package server

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	contactNumberReg = regexp.MustCompile(`^[0-9]{10}$`)
)

type registrationInput struct {
	NGOName        string `form:"ngo_name"`
	RegistrationID string `form:"registration_id"`
	Description    string `form:"description"`
	ContactNumber  string `form:"contact_number"`
	Email          string `form:"email"`
	Location       string `form:"location"`
	Password       string `form:"password"`
}

func validateRegistrationInput(input *registrationInput) map[string]string {
	errs := map[string]string{}

	input.NGOName = strings.TrimSpace(input.NGOName)
	input.RegistrationID = strings.TrimSpace(input.RegistrationID)
	input.Description = strings.TrimSpace(input.Description)
	input.ContactNumber = strings.TrimSpace(input.ContactNumber)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Location = strings.TrimSpace(input.Location)

	if input.NGOName == "" {
		errs["ngo_name"] = "NGO name is required."
	}

	if input.RegistrationID == "" {
		errs["registration_id"] = "Registration ID is required."
	}

	if input.Description == "" {
		errs["description"] = "Description is required."
	}

	if !contactNumberReg.MatchString(input.ContactNumber) {
		errs["contact_number"] = "Contact number must be exactly 10 digits."
	}

	if input.Email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs["email"] = "Enter a valid email address."
	}

	if input.Location == "" {
		errs["location"] = "Location is required."
	}

	if len(input.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters."
	}

	return errs
}

type reportInput struct {
	PersonName string `form:"person_name"`
	Gender     string `form:"gender"`
	Age        int    `form:"age"`
	LastSeen   string `form:"last_seen"`
}

func validateReportInput(input *reportInput) map[string]string {
	errs := map[string]string{}

	input.PersonName = strings.TrimSpace(input.PersonName)
	input.Gender = strings.ToLower(strings.TrimSpace(input.Gender))
	input.LastSeen = strings.TrimSpace(input.LastSeen)

	if input.PersonName == "" {
		errs["person_name"] = "Person name is required."
	}

	switch input.Gender {
	case "male", "female", "other":
	default:
		errs["gender"] = "Gender must be male, female, or other."
	}

	if input.Age < 0 || input.Age > 130 {
		errs["age"] = "Enter a valid age."
	}

	if input.LastSeen == "" {
		errs["last_seen"] = "Last seen location is required."
	}

	return errs
}
