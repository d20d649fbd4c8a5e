package panels

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

const downloadDelay = 1500 * time.Millisecond

type filesStateMsg struct {
	files []types.FileAsset
	err   error
}

type downloadDoneMsg struct{ id string }

// Files is the vault: relay files plus local assets
type Files struct {
	deps  Deps
	modes modes

	remote []types.FileAsset
	local  []types.FileAsset
	filter textinput.Model
	path   textinput.Model
	cursor int

	downloading string
	downloaded  map[string]bool
	status      string
}

// NewFiles creates the files panel and indexes local assets
func NewFiles(d Deps) Panel {
	d = d.withDefaults()
	filter := textinput.New()
	filter.Prompt = "glob> "
	filter.Placeholder = "**/*.png"
	filter.Focus()

	path := textinput.New()
	path.Prompt = "path> "
	path.Placeholder = "/path/to/file"

	f := &Files{
		deps:       d,
		modes:      newModes("vault", "detail", "upload"),
		filter:     filter,
		path:       path,
		downloaded: map[string]bool{},
	}
	if d.AssetsDir != "" {
		assets, err := LocalAssets(d.AssetsDir, d.Now())
		if err != nil {
			d.Logger.Warn("Local assets unavailable", zap.String("dir", d.AssetsDir), zap.Error(err))
		}
		f.local = assets
	}
	return f
}

func (f *Files) ID() types.AppID { return types.AppFiles }
func (f *Files) Title() string   { return "Vault" }

func (f *Files) Init() tea.Cmd {
	d := f.deps
	return func() tea.Msg {
		if d.Relay == nil {
			return filesStateMsg{err: errNoRelay}
		}
		ctx, cancel := d.context()
		defer cancel()
		st, err := d.Relay.SystemState(ctx)
		if err != nil {
			return filesStateMsg{err: err}
		}
		return filesStateMsg{files: st.Files}
	}
}

// Visible returns the merged file list after the glob filter
func (f *Files) Visible() []types.FileAsset {
	all := make([]types.FileAsset, 0, len(f.remote)+len(f.local))
	all = append(all, f.local...)
	all = append(all, f.remote...)

	pattern := strings.TrimSpace(f.filter.Value())
	if pattern == "" {
		return all
	}
	out := all[:0:0]
	for _, a := range all {
		if ok, err := doublestar.Match(pattern, a.Name); err == nil && ok {
			out = append(out, a)
		}
	}
	return out
}

func (f *Files) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case filesStateMsg:
		if msg.err != nil {
			f.deps.Logger.Warn("Vault sync failed", zap.Error(msg.err))
			f.status = "Vault uplink offline; showing local assets"
			return f, nil
		}
		f.remote = msg.files
		return f, nil

	case downloadDoneMsg:
		if f.downloading == msg.id {
			f.downloading = ""
			f.downloaded[msg.id] = true
		}
		return f, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "tab" {
			f.modes.next()
			return f, nil
		}
		switch f.modes.current() {
		case "vault":
			return f, f.updateVault(msg)
		case "detail":
			return f, f.updateDetail(key)
		case "upload":
			if key == "enter" {
				f.upload(f.path.Value())
				return f, nil
			}
			var cmd tea.Cmd
			f.path, cmd = f.path.Update(msg)
			return f, cmd
		}
	}
	return f, nil
}

func (f *Files) updateVault(msg tea.KeyMsg) tea.Cmd {
	visible := f.Visible()
	switch msg.String() {
	case "up":
		if f.cursor > 0 {
			f.cursor--
		}
		return nil
	case "down":
		if f.cursor < len(visible)-1 {
			f.cursor++
		}
		return nil
	case "enter":
		if len(visible) > 0 {
			f.modes.set("detail")
		}
		return nil
	case "esc":
		return Launch(types.AppHome)
	}
	var cmd tea.Cmd
	f.filter, cmd = f.filter.Update(msg)
	f.cursor = 0
	return cmd
}

func (f *Files) updateDetail(key string) tea.Cmd {
	visible := f.Visible()
	if f.cursor >= len(visible) {
		f.modes.set("vault")
		return nil
	}
	sel := visible[f.cursor]
	switch key {
	case "esc":
		f.modes.set("vault")
	case "d":
		if f.downloading != "" || f.downloaded[sel.ID] {
			return nil
		}
		f.downloading = sel.ID
		return Simulate(downloadDelay, downloadDoneMsg{id: sel.ID})
	case "m":
		if sel.Type == "audio" {
			return Launch(types.AppDJMusic)
		}
	}
	return nil
}

func (f *Files) upload(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	asset, err := assetFromFile(path, f.deps.Now())
	if err != nil {
		f.status = "Upload failed: " + err.Error()
		return
	}
	f.local = append([]types.FileAsset{asset}, f.local...)
	f.path.SetValue("")
	f.status = "Uploaded " + asset.Name
	f.modes.set("vault")
}

// LocalAssets indexes every regular file under dir
func LocalAssets(dir string, now time.Time) ([]types.FileAsset, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*")
	if err != nil {
		return nil, err
	}
	var out []types.FileAsset
	for _, m := range matches {
		asset, err := assetFromFile(filepath.Join(dir, filepath.FromSlash(m)), now)
		if err != nil {
			continue
		}
		out = append(out, asset)
	}
	return out, nil
}

func assetFromFile(path string, now time.Time) (types.FileAsset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.FileAsset{}, err
	}
	if !info.Mode().IsRegular() {
		return types.FileAsset{}, fmt.Errorf("%s is not a regular file", path)
	}

	kind, category := "document", "document"
	if mt, err := mimetype.DetectFile(path); err == nil {
		switch top, _, _ := strings.Cut(mt.String(), "/"); top {
		case "image":
			kind, category = "image", "photo"
		case "video":
			kind, category = "video", "video"
		case "audio":
			kind, category = "audio", "music"
		}
	}
	return types.FileAsset{
		ID:        "local:" + path,
		Name:      filepath.Base(path),
		Type:      kind,
		Category:  category,
		URL:       "file://" + path,
		Timestamp: info.ModTime(),
		Size:      HumanSize(info.Size()),
	}, nil
}

// HumanSize formats a byte count the way the vault displays it
func HumanSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func (f *Files) View() string {
	var b strings.Builder
	b.WriteString(header("NEURAL VAULT", f.modes))
	if f.status != "" {
		b.WriteString(mutedStyle.Render(f.status) + "\n\n")
	}

	visible := f.Visible()
	switch f.modes.current() {
	case "vault":
		b.WriteString(f.filter.View() + "\n\n")
		if len(visible) == 0 {
			b.WriteString(mutedStyle.Render("No files match."))
		}
		for i, a := range visible {
			lock := ""
			if a.IsPrivate {
				lock = " " + errorStyle.Render("PRIVATE")
			}
			b.WriteString(cursorLine(i == f.cursor, fmt.Sprintf("%-32s %-9s %s%s", a.Name, a.Type, a.Size, lock)) + "\n")
		}
	case "detail":
		if f.cursor >= len(visible) {
			break
		}
		a := visible[f.cursor]
		fmt.Fprintf(&b, "%s\n%s  %s  %s\n", titleStyle.Render(a.Name), a.Type, a.Size, a.Timestamp.Format(time.RFC822))
		switch {
		case f.downloading == a.ID:
			b.WriteString("\nDownloading... " + Simulated)
		case f.downloaded[a.ID]:
			b.WriteString("\n" + okStyle.Render("Downloaded "+Simulated))
		}
		b.WriteString("\n" + mutedStyle.Render("d download  m open in DJ  esc back"))
	case "upload":
		b.WriteString(f.path.View())
	}
	return b.String()
}
