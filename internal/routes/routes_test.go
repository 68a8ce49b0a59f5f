package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-care-server/internal/config"
	"hospital-care-server/internal/models"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:            "test-secret",
		JWTExpirationMinutes: 60,
	}
	router := gin.New()
	SetupRoutes(router, db, cfg)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshalling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return envelope.Data
}

func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "alice",
		"password": "secret-password",
		"fullName": "Alice Green",
		"email":    "alice@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/user/login", "", gin.H{
		"username": "alice",
		"password": "secret-password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	token, _ := decodeData(t, w)["accessToken"].(string)
	if token == "" {
		t.Fatal("login response carried no access token")
	}
	return token
}

func seedDoctorWithSchedule(t *testing.T, db *gorm.DB, start, end time.Time) *models.Doctor {
	t.Helper()
	user := models.User{Username: "dr.smith", Role: models.RoleDoctor}
	if err := user.SetPassword("secret-password"); err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating doctor user: %v", err)
	}
	doctor := models.Doctor{
		UserRef:       models.ActiveRef(user.ID),
		FullName:      "Dr Smith",
		Qualification: "MBBS",
		Designation:   "Physician",
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("creating doctor: %v", err)
	}
	schedule := models.DoctorSchedule{
		DoctorID:  doctor.ID,
		StartDate: start,
		EndDate:   end,
		Status:    models.ScheduleActive,
	}
	if err := db.Create(&schedule).Error; err != nil {
		t.Fatalf("creating schedule: %v", err)
	}
	return &doctor
}

func TestBookAppointmentEndToEnd(t *testing.T) {
	router, db := newTestServer(t)
	token := registerAndLogin(t, router)

	start := time.Now().Add(24 * time.Hour)
	doctor := seedDoctorWithSchedule(t, db, start, start.Add(8*time.Hour))

	w := doJSON(t, router, http.MethodPost, "/api/patient/appointments", token, gin.H{
		"doctorId":        doctor.ID,
		"appointmentDate": start.Add(time.Hour).Format(time.RFC3339),
		"symptoms":        "persistent headache",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("booking returned %d: %s", w.Code, w.Body.String())
	}
	if got := decodeData(t, w)["status"]; got != string(models.AppointmentRequested) {
		t.Errorf("booked appointment status = %v, want Requested", got)
	}

	// Outside every availability window the booking is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/patient/appointments", token, gin.H{
		"doctorId":        doctor.ID,
		"appointmentDate": start.Add(240 * time.Hour).Format(time.RFC3339),
		"symptoms":        "persistent headache",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("booking outside schedule returned %d, want 400", w.Code)
	}
}

func TestForeignAppointmentLooksMissing(t *testing.T) {
	router, db := newTestServer(t)
	token := registerAndLogin(t, router)

	start := time.Now().Add(24 * time.Hour)
	doctor := seedDoctorWithSchedule(t, db, start, start.Add(8*time.Hour))

	other := models.Patient{FullName: "Bob Brown"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("creating second patient: %v", err)
	}
	appointment := models.Appointment{
		PatientID:       other.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: start.Add(time.Hour),
		Status:          models.AppointmentRequested,
		Symptoms:        "back pain",
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("creating appointment: %v", err)
	}

	// Another patient's appointment is indistinguishable from a missing one.
	w := doJSON(t, router, http.MethodPost, "/api/patient/appointments/"+appointment.ID+"/cancel", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cancelling foreign appointment returned %d, want 404", w.Code)
	}
	if got := reloadStatus(t, db, appointment.ID); got != models.AppointmentRequested {
		t.Errorf("foreign appointment status = %s, want Requested untouched", got)
	}

	w = doJSON(t, router, http.MethodPut, "/api/patient/appointments/"+appointment.ID+"/reschedule", token, gin.H{
		"newAppointmentDate": start.Add(2 * time.Hour).Format(time.RFC3339),
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("rescheduling foreign appointment returned %d, want 404", w.Code)
	}
}

func reloadStatus(t *testing.T, db *gorm.DB, id string) models.AppointmentStatus {
	t.Helper()
	var appointment models.Appointment
	if err := db.First(&appointment, "id = ?", id).Error; err != nil {
		t.Fatalf("reloading appointment: %v", err)
	}
	return appointment.Status
}

func TestRoleBoundaries(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerAndLogin(t, router)

	// A patient token cannot reach doctor or admin surfaces.
	for _, path := range []string{"/api/doctor/appointments", "/api/admin/bills"} {
		w := doJSON(t, router, http.MethodGet, path, token, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("GET %s with patient token returned %d, want 403", path, w.Code)
		}
	}

	// No token at all is unauthorized.
	w := doJSON(t, router, http.MethodGet, "/api/patient/appointments", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated request returned %d, want 401", w.Code)
	}

	// A garbage token is unauthorized too.
	w = doJSON(t, router, http.MethodGet, "/api/patient/appointments", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token returned %d, want 401", w.Code)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	router, _ := newTestServer(t)
	registerAndLogin(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "alice",
		"password": "another-password",
		"fullName": "Another Alice",
		"email":    "alice2@example.com",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate registration returned %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/user/check-username?username=alice", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check-username returned %d: %s", w.Code, w.Body.String())
	}
	if available, _ := decodeData(t, w)["isAvailable"].(bool); available {
		t.Error("taken username reported available")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestServer(t)
	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health returned %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if body["status"] != "UP" {
		t.Errorf("health status = %q, want UP", body["status"])
	}
}
