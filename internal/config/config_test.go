package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Scoring:  ScoringConfig{Profile: "boosted"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database.addrs")
	}
}

func TestValidate_ScoringProfiles(t *testing.T) {
	for _, profile := range []string{"boosted", "weighted"} {
		t.Run("profile="+profile, func(t *testing.T) {
			cfg := validConfig()
			cfg.Scoring.Profile = profile
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for profile %q: %v", profile, err)
			}
		})
	}
}

func TestValidate_UnknownScoringProfile(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring.Profile = "hybrid2000"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown scoring profile")
	}
	expected := `scoring.profile must be "boosted" or "weighted", got "hybrid2000"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_MalformedReferenceDate(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring.ReferenceDate = "20-OCT-1987"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed reference date")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()

	if cfg.Index.Name != "newswire:articles:idx" {
		t.Errorf("unexpected index name default: %q", cfg.Index.Name)
	}
	if cfg.Index.KeyPrefix != "newswire:article:" {
		t.Errorf("unexpected key prefix default: %q", cfg.Index.KeyPrefix)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("expected 384 embedding dimensions, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Geocoding.RetryAttempts != 3 {
		t.Errorf("expected 3 retry attempts, got %d", cfg.Geocoding.RetryAttempts)
	}
	if cfg.Scoring.Profile != "boosted" {
		t.Errorf("expected boosted default profile, got %q", cfg.Scoring.Profile)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestReferenceTime_CorpusAnchor(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring.ReferenceDate = "1987-10-20"

	ref := cfg.ReferenceTime()
	if ref.Year() != 1987 || ref.Month() != 10 || ref.Day() != 20 {
		t.Errorf("unexpected reference time: %v", ref)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("NEWSWIRE_TEST_KEY", "secret")

	out := string(expandEnvVars([]byte("key: ${NEWSWIRE_TEST_KEY}\nurl: ${MISSING_VAR:-http://fallback}")))
	want := "key: secret\nurl: http://fallback"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
