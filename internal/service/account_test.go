package service

import (
	"testing"

	"hospital-care-server/internal/models"
)

func TestRegisterPatientAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	patient, err := accounts.RegisterPatient(PatientRegistration{
		Username: "alice",
		Password: "secret-password",
		FullName: "Alice Green",
		Email:    "alice@example.com",
		Gender:   "F",
	})
	if err != nil {
		t.Fatalf("registering patient: %v", err)
	}
	if !patient.Active() {
		t.Error("new patient has no attached login account")
	}

	user, err := accounts.Authenticate("alice", "secret-password")
	if err != nil {
		t.Fatalf("authenticating: %v", err)
	}
	if user.Role != models.RolePatient {
		t.Errorf("role = %s, want patient", user.Role)
	}
	if user.PasswordHash == "secret-password" {
		t.Error("password stored in the clear")
	}

	if _, err := accounts.Authenticate("alice", "wrong"); !IsValidation(err) {
		t.Errorf("wrong password: got %v, want validation error", err)
	}
	if _, err := accounts.Authenticate("nobody", "secret-password"); !IsNotFound(err) {
		t.Errorf("unknown user: got %v, want not-found", err)
	}

	available, err := accounts.IsUsernameAvailable("alice")
	if err != nil {
		t.Fatalf("checking username: %v", err)
	}
	if available {
		t.Error("taken username reported available")
	}
}

func TestUpdatePersonalInfoChecksUsername(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	patient := seedPatient(t, db, "alice")
	seedPatient(t, db, "bob")

	err := accounts.UpdatePersonalInfo(*patient.UserID, PersonalInfoUpdate{
		Username: "bob",
		FullName: "Alice Green",
	})
	if !IsValidation(err) {
		t.Fatalf("renaming onto taken username: got %v, want validation error", err)
	}

	if err := accounts.UpdatePersonalInfo(*patient.UserID, PersonalInfoUpdate{
		Username:      "alice2",
		NewPassword:   "new-secret",
		FullName:      "Alice Green",
		ContactNumber: "555-0100",
	}); err != nil {
		t.Fatalf("updating personal info: %v", err)
	}

	if _, err := accounts.Authenticate("alice2", "new-secret"); err != nil {
		t.Errorf("authenticating with new credentials: %v", err)
	}

	info, err := accounts.PersonalInfoForUser(*patient.UserID)
	if err != nil {
		t.Fatalf("reading personal info: %v", err)
	}
	if info.ContactNumber != "555-0100" {
		t.Errorf("contact number = %q, want 555-0100", info.ContactNumber)
	}
}
