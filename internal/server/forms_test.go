package server

import "testing"

func validRegistration() registrationInput {
	return registrationInput{
		NGOName:        "Helping Hands",
		RegistrationID: "NGO-4821",
		Description:    "Community search and rescue volunteers",
		ContactNumber:  "9876543210",
		Email:          "hh@example.org",
		Location:       "Delhi",
		Password:       "secret1",
	}
}

func TestValidateRegistrationInput_Valid(t *testing.T) {
	input := validRegistration()
	errs := validateRegistrationInput(&input)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateRegistrationInput_NormalizesFields(t *testing.T) {
	input := validRegistration()
	input.Email = "  HH@Example.ORG "
	input.NGOName = "  Helping Hands  "

	errs := validateRegistrationInput(&input)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if input.Email != "hh@example.org" {
		t.Errorf("email not normalized: %q", input.Email)
	}
	if input.NGOName != "Helping Hands" {
		t.Errorf("ngo name not trimmed: %q", input.NGOName)
	}
}

func TestValidateRegistrationInput_FieldErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*registrationInput)
		field  string
	}{
		{"missing ngo name", func(in *registrationInput) { in.NGOName = "  " }, "ngo_name"},
		{"missing registration id", func(in *registrationInput) { in.RegistrationID = "" }, "registration_id"},
		{"missing description", func(in *registrationInput) { in.Description = "" }, "description"},
		{"short contact number", func(in *registrationInput) { in.ContactNumber = "12345" }, "contact_number"},
		{"alpha contact number", func(in *registrationInput) { in.ContactNumber = "98765golang" }, "contact_number"},
		{"missing email", func(in *registrationInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *registrationInput) { in.Email = "not-an-email" }, "email"},
		{"missing location", func(in *registrationInput) { in.Location = "" }, "location"},
		{"short password", func(in *registrationInput) { in.Password = "12345" }, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegistration()
			tc.mutate(&input)

			errs := validateRegistrationInput(&input)
			if _, ok := errs[tc.field]; !ok {
				t.Errorf("expected error on field %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestValidateReportInput(t *testing.T) {
	input := reportInput{
		PersonName: "Asha Kumari",
		Gender:     "Female",
		Age:        12,
		LastSeen:   "Connaught Place, Delhi",
	}

	errs := validateReportInput(&input)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if input.Gender != "female" {
		t.Errorf("gender not normalized: %q", input.Gender)
	}

	bad := reportInput{PersonName: "", Gender: "unknown", Age: 240, LastSeen: ""}
	errs = validateReportInput(&bad)
	for _, field := range []string{"person_name", "gender", "age", "last_seen"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error on field %q, got %v", field, errs)
		}
	}
}
