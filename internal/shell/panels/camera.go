package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/AuraOS/internal/media"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

var photoFilters = []string{"none", "mono", "neon", "vintage"}

type captureMsg struct {
	stream media.Stream
	err    error
}

// Photo is a gallery entry
type Photo struct {
	Name   string
	Device string
	Filter string
}

// Camera opens a local capture device and keeps a gallery
type Camera struct {
	deps  Deps
	modes modes

	facing  media.Facing
	stream  media.Stream
	opening bool
	err     error

	gallery []Photo
	cursor  int
}

// NewCamera creates the camera panel
func NewCamera(d Deps) Panel {
	return &Camera{
		deps:   d.withDefaults(),
		modes:  newModes("capture", "gallery", "edit"),
		facing: media.FacingUser,
	}
}

func (c *Camera) ID() types.AppID { return types.AppCamera }
func (c *Camera) Title() string   { return "Lens" }

func (c *Camera) Init() tea.Cmd {
	return c.open()
}

// Condition returns the classified capture failure, if any
func (c *Camera) Condition() media.Condition {
	return media.Classify(c.err)
}

// Gallery returns captured photos
func (c *Camera) Gallery() []Photo {
	return c.gallery
}

// Close releases the open device
func (c *Camera) Close() error {
	if c.stream == nil {
		return nil
	}
	err := c.stream.Close()
	c.stream = nil
	return err
}

func (c *Camera) open() tea.Cmd {
	if c.opening {
		return nil
	}
	c.opening = true
	devs, facing := c.deps.Devices, c.facing
	return func() tea.Msg {
		s, err := media.Capture(devs, media.KindCamera, media.Constraints{Facing: facing, Width: 1280, Height: 720})
		return captureMsg{stream: s, err: err}
	}
}

func (c *Camera) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case captureMsg:
		c.opening = false
		_ = c.Close()
		c.stream, c.err = msg.stream, msg.err
		return c, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "tab":
			c.modes.next()
			return c, nil
		case "esc":
			_ = c.Close()
			return c, Launch(types.AppHome)
		}

		switch c.modes.current() {
		case "capture":
			switch key {
			case "r":
				return c, c.open()
			case "f":
				if c.facing == media.FacingUser {
					c.facing = media.FacingEnvironment
				} else {
					c.facing = media.FacingUser
				}
				_ = c.Close()
				return c, c.open()
			case " ", "enter":
				if c.stream != nil {
					c.gallery = append(c.gallery, Photo{
						Name:   fmt.Sprintf("AURA_%d.png", c.deps.Now().Unix()),
						Device: c.stream.Device().Name,
						Filter: "none",
					})
				}
			}
		case "gallery", "edit":
			switch key {
			case "up", "k":
				if c.cursor > 0 {
					c.cursor--
				}
			case "down", "j":
				if c.cursor < len(c.gallery)-1 {
					c.cursor++
				}
			case "enter":
				if c.modes.current() == "edit" && len(c.gallery) > 0 {
					p := &c.gallery[c.cursor]
					p.Filter = nextFilter(p.Filter)
				}
			case "x":
				if len(c.gallery) > 0 {
					c.gallery = append(c.gallery[:c.cursor], c.gallery[c.cursor+1:]...)
					if c.cursor > 0 && c.cursor >= len(c.gallery) {
						c.cursor--
					}
				}
			}
		}
	}
	return c, nil
}

func nextFilter(cur string) string {
	for i, f := range photoFilters {
		if f == cur {
			return photoFilters[(i+1)%len(photoFilters)]
		}
	}
	return photoFilters[0]
}

func (c *Camera) View() string {
	var b strings.Builder
	b.WriteString(header("OPTICAL LENS", c.modes))

	switch c.modes.current() {
	case "capture":
		switch {
		case c.opening:
			b.WriteString("Linking optical sensor...")
		case c.err != nil:
			b.WriteString(errorStyle.Render(string(c.Condition())) + "\n")
			b.WriteString(mutedStyle.Render("r retry  esc back"))
		case c.stream != nil:
			fmt.Fprintf(&b, "%s  facing %s\n", okStyle.Render("LIVE "+c.stream.Device().Path), c.facing)
			b.WriteString(mutedStyle.Render("space capture  f flip  r relink"))
		}
	case "gallery", "edit":
		if len(c.gallery) == 0 {
			b.WriteString(mutedStyle.Render("Gallery empty."))
		}
		for i, p := range c.gallery {
			b.WriteString(cursorLine(i == c.cursor, fmt.Sprintf("%-20s %-8s filter:%s", p.Name, p.Device, p.Filter)) + "\n")
		}
		if c.modes.current() == "edit" {
			b.WriteString("\n" + mutedStyle.Render("enter cycle filter  x delete"))
		}
	}
	return b.String()
}
