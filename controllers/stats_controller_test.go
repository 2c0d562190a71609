package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/quillapi/quill/models"
)

func TestGetStats(t *testing.T) {
	r, db := newTestEnv(t)
	_, userID := signupUser(t, r, "author@x.com")

	now := time.Now()
	seedBlog(t, db, userID, "a", models.StatePublished, 3, "body", nil, now)
	seedBlog(t, db, userID, "b", models.StatePublished, 4, "body", nil, now)
	seedBlog(t, db, userID, "c", models.StateDraft, 0, "body", nil, now)

	w := doJSON(r, http.MethodGet, "/api/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	data := dataField(t, w)
	if data["user_count"].(float64) != 1 {
		t.Errorf("user_count = %v, want 1", data["user_count"])
	}
	if data["published_count"].(float64) != 2 {
		t.Errorf("published_count = %v, want 2", data["published_count"])
	}
	if data["total_reads"].(float64) != 7 {
		t.Errorf("total_reads = %v, want 7", data["total_reads"])
	}
}

func TestPageViewRecorder_CountsBlogReads(t *testing.T) {
	r, db := newTestEnv(t)
	_, userID := signupUser(t, r, "author@x.com")
	blog := seedBlog(t, db, userID, "tracked", models.StatePublished, 0, "body", nil, time.Now())

	path := fmt.Sprintf("/api/blogs/%d", blog.ID)
	for i := 0; i < 3; i++ {
		doJSON(r, http.MethodGet, path, "", nil)
	}
	// 404s are not recorded
	doJSON(r, http.MethodGet, "/api/blogs/99999", "", nil)

	var pv models.PageView
	if err := db.Where("path = ?", path).First(&pv).Error; err != nil {
		t.Fatalf("no page view row for %s: %v", path, err)
	}
	if pv.Count != 3 {
		t.Errorf("count = %d, want 3", pv.Count)
	}

	var rows int64
	db.Model(&models.PageView{}).Count(&rows)
	if rows != 1 {
		t.Errorf("page view rows = %d, want 1 (aggregated per day and path)", rows)
	}
}
