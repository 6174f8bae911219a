package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCore       = "core"
	KeyVersion    = "version"
	KeyPurpose    = "purpose"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyStage      = "stage"
	KeyBuildID    = "build_id"
	KeyBuildDir   = "build_dir"
	KeySetupDir   = "setup_dir"
	KeySnippet    = "snippet"
	KeyInstance   = "instance"
	KeyCount      = "count"
	KeyURL        = "url"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Core(name string) slog.Attr      { return slog.String(KeyCore, name) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Purpose(p string) slog.Attr      { return slog.String(KeyPurpose, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func BuildDir(d string) slog.Attr     { return slog.String(KeyBuildDir, d) }
func SetupDir(d string) slog.Attr     { return slog.String(KeySetupDir, d) }
func Snippet(s string) slog.Attr      { return slog.String(KeySnippet, s) }
func Instance(n string) slog.Attr     { return slog.String(KeyInstance, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
