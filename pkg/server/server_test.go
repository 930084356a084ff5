package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lmarten/coursemap/pkg/catalog"
	apperrors "github.com/lmarten/coursemap/pkg/errors"
)

func testServer(t *testing.T, listing string) *Server {
	t.Helper()
	c, err := catalog.Parse(listing)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return New(c, nil)
}

func decodeEnvelope(t *testing.T, body string) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body: %s)", err, body)
	}
	return env
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, "CS-101")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestSubjectsKeepsOrder(t *testing.T) {
	srv := testServer(t, "ZOO-400\nCS-101\nZOO-401\nALG-200")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/subjects", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	body := rec.Body.String()
	zoo := strings.Index(body, `"ZOO"`)
	cs := strings.Index(body, `"CS"`)
	alg := strings.Index(body, `"ALG"`)
	if zoo == -1 || cs == -1 || alg == -1 {
		t.Fatalf("body missing subjects: %s", body)
	}
	if !(zoo < cs && cs < alg) {
		t.Errorf("subjects out of first-appearance order: %s", body)
	}
}

func TestSubjectFound(t *testing.T) {
	srv := testServer(t, "CS-101\nCS-102\nMATH-201")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/subjects/CS", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp subjectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Subject != "CS" {
		t.Errorf("Subject = %q, want CS", resp.Subject)
	}
	if len(resp.Courses) != 2 || resp.Courses[0] != "101" || resp.Courses[1] != "102" {
		t.Errorf("Courses = %v, want [101 102]", resp.Courses)
	}
}

func TestSubjectNotFound(t *testing.T) {
	srv := testServer(t, "CS-101")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/subjects/ART", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	env := decodeEnvelope(t, rec.Body.String())
	if env.Error.Code != apperrors.ErrCodeSubjectNotFound {
		t.Errorf("error code = %q, want %q", env.Error.Code, apperrors.ErrCodeSubjectNotFound)
	}
}

func TestGroupEndpoint(t *testing.T) {
	srv := testServer(t, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/group", strings.NewReader("CS-101\nCS-101\nMATH-201"))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	got := catalog.New()
	if err := json.Unmarshal(rec.Body.Bytes(), got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	courses, _ := got.Courses("CS")
	if len(courses) != 2 {
		t.Errorf("Courses(CS) = %v, want duplicate preserved", courses)
	}
}

func TestGroupEndpointMalformed(t *testing.T) {
	srv := testServer(t, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/group", strings.NewReader("CS101"))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	env := decodeEnvelope(t, rec.Body.String())
	if env.Error.Code != apperrors.ErrCodeInvalidLine {
		t.Errorf("error code = %q, want %q", env.Error.Code, apperrors.ErrCodeInvalidLine)
	}
}
