package dataclient

import (
	"reflect"
	"testing"
)

func TestRewriteNamed(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		marker    byte
		wantQuery string
		wantNames []string
	}{
		{
			name:      "simple insert",
			query:     "INSERT INTO users (id, name) VALUES (:id, :name)",
			marker:    '@',
			wantQuery: "INSERT INTO users (id, name) VALUES (@id, @name)",
			wantNames: []string{"id", "name"},
		},
		{
			name:      "repeated name",
			query:     "SELECT * FROM users WHERE id = :id OR parent = :id",
			marker:    '@',
			wantQuery: "SELECT * FROM users WHERE id = @id OR parent = @id",
			wantNames: []string{"id"},
		},
		{
			name:      "cast left alone",
			query:     "SELECT price::text FROM products WHERE id = :id",
			marker:    '@',
			wantQuery: "SELECT price::text FROM products WHERE id = @id",
			wantNames: []string{"id"},
		},
		{
			name:      "quoted text left alone",
			query:     "SELECT ':skip' AS x, \"col:name\" FROM t WHERE a = :a",
			marker:    '@',
			wantQuery: "SELECT ':skip' AS x, \"col:name\" FROM t WHERE a = @a",
			wantNames: []string{"a"},
		},
		{
			name:      "comment left alone",
			query:     "-- uses :ignored\nSELECT 1 WHERE x = :x",
			marker:    ':',
			wantQuery: "-- uses :ignored\nSELECT 1 WHERE x = :x",
			wantNames: []string{"x"},
		},
		{
			name:      "no placeholders",
			query:     "CREATE TABLE IF NOT EXISTS t (id TEXT)",
			marker:    '@',
			wantQuery: "CREATE TABLE IF NOT EXISTS t (id TEXT)",
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotQuery, gotNames := rewriteNamed(tt.query, tt.marker)
			if gotQuery != tt.wantQuery {
				t.Errorf("query = %q, want %q", gotQuery, tt.wantQuery)
			}
			if !reflect.DeepEqual(gotNames, tt.wantNames) {
				t.Errorf("names = %v, want %v", gotNames, tt.wantNames)
			}
		})
	}
}

func TestBindParams(t *testing.T) {
	params := []Param{String("id", "1"), String("unused", "x"), Null("email")}

	bound, err := bindParams([]string{"id", "email"}, params)
	if err != nil {
		t.Fatalf("bindParams() error = %v", err)
	}
	if len(bound) != 2 {
		t.Errorf("bound %d params, want 2", len(bound))
	}
	if bound["email"] != nil {
		t.Errorf("email = %v, want nil", bound["email"])
	}

	if _, err := bindParams([]string{"missing"}, params); err == nil {
		t.Error("expected error for missing parameter")
	}
}

func TestHasReturning(t *testing.T) {
	if !hasReturning("UPDATE users SET name = :name WHERE id = :id\n RETURNING id") {
		t.Error("expected RETURNING to be detected")
	}
	if hasReturning("DELETE FROM users WHERE id = :id") {
		t.Error("did not expect RETURNING")
	}
	if hasReturning("SELECT returning_customer FROM t") {
		t.Error("column names containing the keyword should not match")
	}
}
