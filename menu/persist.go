package menu

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/ini.v1"
)

// Section is the INI section holding menu check states.
const Section = "Menu"

const iniExt = ".ini"

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// Importing this package turns off ini.PrettyFormat for the whole process so
// saved lines read name=1 rather than name = 1. ini.v1 offers no per-file
// switch for it.
func init() {
	ini.PrettyFormat = false
}

// Storable reports whether label can be written as a key and read back
// unchanged. Empty labels, labels with surrounding blanks, labels that would
// parse as a comment, a section header or an auto-increment key, and labels
// holding quotes or line breaks are not stored.
func Storable(label string) bool {
	if label == "" || label == "-" || strings.ContainsAny(label, "\"`\r\n") {
		return false
	}
	switch label[0] {
	case '#', ';', '[':
		return false
	}
	r := []rune(label)
	return !unicode.IsSpace(r[0]) && !unicode.IsSpace(r[len(r)-1])
}

// DefaultDataDir returns the data directory next to the executable.
func DefaultDataDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "data"
	}
	return filepath.Join(filepath.Dir(exe), "data")
}

// ResolvePath turns a settings file name into a path. Bare names live in
// dataDir, a missing extension becomes .ini and any other extension is
// rejected with ErrNotIni.
func ResolvePath(dataDir, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotIni)
	}
	switch ext := filepath.Ext(name); {
	case ext == "":
		name += iniExt
	case strings.EqualFold(ext, iniExt):
	default:
		return "", fmt.Errorf("%w: %q", ErrNotIni, name)
	}
	if !strings.ContainsAny(name, `/\`) {
		if dataDir == "" {
			dataDir = DefaultDataDir()
		}
		name = filepath.Join(dataDir, name)
	}
	return name, nil
}

func (r *Registry) resolve(name string) (string, error) {
	return ResolvePath(r.dataDir, name)
}

func (r *Registry) fill(sec *ini.Section) {
	for _, rec := range r.records {
		if rec.Separator || !rec.AutoCheck {
			continue
		}
		if !Storable(rec.Name) {
			r.log.Warn().Str("item", rec.Name).Msg("label cannot be stored, skipped")
			continue
		}
		sec.Key(rec.Name).SetValue(formatState(rec.Checked))
	}
}

// Save writes the check state of every auto-check item to the Menu section
// of the settings file, keeping whatever else the file holds. An existing
// file is only replaced when overwrite is set or the confirm hook agrees.
func (r *Registry) Save(name string, overwrite bool) error {
	path, err := r.resolve(name)
	if err != nil {
		r.log.Warn().Err(err).Str("path", name).Msg("save settings")
		return err
	}
	cfg := ini.Empty(loadOptions)
	_, err = os.Stat(path)
	switch {
	case err == nil:
		if !overwrite && (r.confirm == nil || !r.confirm(path)) {
			r.log.Debug().Str("path", path).Msg("overwrite declined")
			return nil
		}
		if cfg, err = ini.LoadSources(loadOptions, path); err != nil {
			return fmt.Errorf("menu: read %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("menu: stat %s: %w", path, err)
	}
	r.fill(cfg.Section(Section))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("menu: create %s: %w", filepath.Dir(path), err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("menu: write %s: %w", path, err)
	}
	r.log.Info().Str("path", path).Msg("settings saved")
	return nil
}

// Load restores auto-check items from the Menu section of the settings file.
// Each restored item gets its check mark and is reported to the handler, the
// same as a selection would be. Keys missing from the file leave their items
// untouched.
func (r *Registry) Load(name string) error {
	path, err := r.resolve(name)
	if err != nil {
		r.log.Warn().Err(err).Str("path", name).Msg("load settings")
		return err
	}
	if _, err := os.Stat(path); err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("load settings")
		return fmt.Errorf("menu: load %s: %w", path, err)
	}
	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("load settings")
		return fmt.Errorf("menu: read %s: %w", path, err)
	}
	sec, err := cfg.GetSection(Section)
	if err != nil {
		return nil
	}
	type restored struct {
		name    string
		checked bool
	}
	var changes []restored
	for i := range r.records {
		rec := &r.records[i]
		if rec.Separator || !rec.AutoCheck || !Storable(rec.Name) || !sec.HasKey(rec.Name) {
			continue
		}
		value := sec.Key(rec.Name).String()
		checked, ok := parseState(value)
		if !ok {
			r.log.Warn().Str("item", rec.Name).Str("value", value).Msg("bad menu state")
			continue
		}
		rec.Checked = checked
		pos := rec.Position
		if live, found := r.position(rec.Popup, rec.Name); found {
			pos = live
		}
		if err := r.native.CheckItem(rec.Popup, pos, checked); err != nil {
			r.log.Debug().Err(err).Str("item", rec.Name).Msg("restore check")
		}
		changes = append(changes, restored{rec.Name, checked})
	}
	for _, c := range changes {
		r.notify(c.name, c.checked)
	}
	r.log.Info().Str("path", path).Int("items", len(changes)).Msg("settings loaded")
	return nil
}

// WriteTo renders the Menu section as it would be saved.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	cfg := ini.Empty(loadOptions)
	r.fill(cfg.Section(Section))
	return cfg.WriteTo(w)
}

func formatState(checked bool) string {
	if checked {
		return "1"
	}
	return "0"
}

func parseState(v string) (bool, bool) {
	switch v = strings.TrimSpace(v); v {
	case "1":
		return true, true
	case "0":
		return false, true
	}
	b, err := strconv.ParseBool(v)
	return b, err == nil
}
