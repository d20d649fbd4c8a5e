package media

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Device node patterns probed under Root
const (
	CameraPattern     = "dev/video*"
	MicrophonePattern = "dev/snd/pcmC*c"
)

// Linux enumerates V4L2 and ALSA capture nodes
type Linux struct {
	// Root is the filesystem root; tests point it at a temp dir
	Root string
}

// NewLinux returns the host device probe
func NewLinux() *Linux {
	return &Linux{Root: "/"}
}

// List implements Devices
func (l *Linux) List() ([]Device, error) {
	if runtime.GOOS != "linux" && l.Root == "/" {
		return nil, ErrUnsupported
	}
	fsys := os.DirFS(l.Root)

	var out []Device
	for _, probe := range []struct {
		kind    Kind
		pattern string
	}{
		{KindCamera, CameraPattern},
		{KindMicrophone, MicrophonePattern},
	} {
		matches, err := doublestar.Glob(fsys, probe.pattern)
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		for _, m := range matches {
			out = append(out, Device{
				Path: filepath.Join(l.Root, filepath.FromSlash(m)),
				Kind: probe.kind,
				Name: filepath.Base(m),
			})
		}
	}
	return out, nil
}

// Open implements Devices. Nodes are opened read-only; constraints are
// recorded on the stream but not negotiated with the driver.
func (l *Linux) Open(d Device, c Constraints) (Stream, error) {
	f, err := os.OpenFile(d.Path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return &fileStream{f: f, dev: d, constraints: c}, nil
}

type fileStream struct {
	f           *os.File
	dev         Device
	constraints Constraints
}

func (s *fileStream) Device() Device           { return s.dev }
func (s *fileStream) Constraints() Constraints { return s.constraints }
func (s *fileStream) Close() error             { return s.f.Close() }

var _ Devices = (*Linux)(nil)
