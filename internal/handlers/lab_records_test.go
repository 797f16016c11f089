package handlers

import (
	"net/http"
	"testing"
)

func createRecordViaAPI(t *testing.T, env *testEnv, token, title, templateType string) map[string]any {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/lab-records", map[string]any{
		"title":        title,
		"templateType": templateType,
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	return dataMap(t, decodeJSONMap(t, resp))
}

func recordSections(t *testing.T, env *testEnv, token, recordID string) []any {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodGet, "/api/lab-records/"+recordID+"/sections", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	return dataList(t, decodeJSONMap(t, resp))
}

func TestCreateRecord_SeedsPhysicsTemplate(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "physics@example.com", "password1")

	record := createRecordViaAPI(t, env, token, "Simple Pendulum", "physics")
	sections := recordSections(t, env, token, record["id"].(string))

	want := []string{"Student Details", "Aim", "Apparatus", "Theory", "Procedure", "Observations", "Results", "Conclusion"}
	if len(sections) != len(want) {
		t.Fatalf("expected %d seeded sections, got %d", len(want), len(sections))
	}
	for i, title := range want {
		section := sections[i].(map[string]any)
		if section["title"] != title {
			t.Errorf("position %d: expected %q, got %v", i, title, section["title"])
		}
		if int(section["order"].(float64)) != i {
			t.Errorf("section %q: expected order %d, got %v", title, i, section["order"])
		}
	}

	first := sections[0].(map[string]any)
	if first["sectionType"] != "student_details" {
		t.Errorf("expected first section to be student details, got %v", first["sectionType"])
	}
}

func TestCreateRecord_SeedsComputerTemplate(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "cs@example.com", "password1")

	record := createRecordViaAPI(t, env, token, "Sorting Algorithms", "computer")
	sections := recordSections(t, env, token, record["id"].(string))

	want := []string{"Student Details", "Aim", "Theory", "Code", "Output", "Conclusion"}
	if len(sections) != len(want) {
		t.Fatalf("expected %d seeded sections, got %d", len(want), len(sections))
	}
	code := sections[3].(map[string]any)
	if code["sectionType"] != "code" {
		t.Errorf("expected code section type, got %v", code["sectionType"])
	}
}

func TestCreateRecord_Validation(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "invalid@example.com", "password1")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/lab-records", map[string]any{
		"title":        "No Template",
		"templateType": "biology",
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusBadRequest)

	resp = performJSONRequest(t, env.app, http.MethodPost, "/api/lab-records", map[string]any{
		"templateType": "physics",
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestListRecords_ScopedToOwner(t *testing.T) {
	env := setupTestEnv(t)
	_, aliceToken := createTestUser(t, env.db, "alice@example.com", "password1")
	_, bobToken := createTestUser(t, env.db, "bob@example.com", "password1")

	createRecordViaAPI(t, env, aliceToken, "Alice Record", "physics")

	resp := performJSONRequest(t, env.app, http.MethodGet, "/api/lab-records", nil, authHeaders(bobToken))
	assertStatus(t, resp, http.StatusOK)
	if records := dataList(t, decodeJSONMap(t, resp)); len(records) != 0 {
		t.Errorf("expected bob to see no records, got %d", len(records))
	}

	resp = performJSONRequest(t, env.app, http.MethodGet, "/api/lab-records", nil, authHeaders(aliceToken))
	assertStatus(t, resp, http.StatusOK)
	if records := dataList(t, decodeJSONMap(t, resp)); len(records) != 1 {
		t.Errorf("expected alice to see 1 record, got %d", len(records))
	}
}

func TestGetRecord_NotOwnedReads404(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := createTestUser(t, env.db, "owner@example.com", "password1")
	_, otherToken := createTestUser(t, env.db, "other@example.com", "password1")

	record := createRecordViaAPI(t, env, ownerToken, "Private", "chemistry")

	resp := performJSONRequest(t, env.app, http.MethodGet, "/api/lab-records/"+record["id"].(string), nil, authHeaders(otherToken))
	assertStatus(t, resp, http.StatusNotFound)
}

func TestUpdateRecord(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "rename@example.com", "password1")

	record := createRecordViaAPI(t, env, token, "Old Title", "physics")

	resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/lab-records/"+record["id"].(string), map[string]any{
		"title": "New Title",
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)

	data := dataMap(t, decodeJSONMap(t, resp))
	if data["title"] != "New Title" {
		t.Errorf("expected renamed title, got %v", data["title"])
	}
	if data["templateType"] != "physics" {
		t.Errorf("expected template untouched, got %v", data["templateType"])
	}
}

func TestDeleteRecord(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "delete@example.com", "password1")

	record := createRecordViaAPI(t, env, token, "Doomed", "physics")
	id := record["id"].(string)

	resp := performJSONRequest(t, env.app, http.MethodDelete, "/api/lab-records/"+id, nil, authHeaders(token))
	assertStatus(t, resp, http.StatusNoContent)

	resp = performJSONRequest(t, env.app, http.MethodGet, "/api/lab-records/"+id, nil, authHeaders(token))
	assertStatus(t, resp, http.StatusNotFound)
}

func TestDuplicateRecord(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "dup@example.com", "password1")

	record := createRecordViaAPI(t, env, token, "Titration", "chemistry")
	id := record["id"].(string)

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/lab-records/"+id+"/duplicate", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)

	clone := dataMap(t, decodeJSONMap(t, resp))
	if clone["title"] != "Titration (Copy)" {
		t.Errorf("expected copy suffix, got %v", clone["title"])
	}
	if clone["id"] == id {
		t.Error("expected the copy to have a fresh id")
	}

	original := recordSections(t, env, token, id)
	copied := recordSections(t, env, token, clone["id"].(string))
	if len(copied) != len(original) {
		t.Errorf("expected %d copied sections, got %d", len(original), len(copied))
	}
}
