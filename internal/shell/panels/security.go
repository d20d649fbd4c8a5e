package panels

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/AuraOS/internal/media"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

const (
	scanInterval    = 3 * time.Second
	maxSentinelLogs = 5
)

type sentinelMsg struct {
	camera media.Stream
	mic    media.Stream
	err    error
}

type scanTickMsg struct{ session int }

// Security runs the sentinel monitor over local camera and microphone
type Security struct {
	deps  Deps
	modes modes
	rng   *rand.Rand

	camera  media.Stream
	mic     media.Stream
	session int
	threat  int
	logs    []string
	err     error
}

// NewSecurity creates the sentinel panel
func NewSecurity(d Deps) Panel {
	d = d.withDefaults()
	seed := uint64(d.Now().UnixNano())
	return &Security{
		deps:  d,
		modes: newModes("monitor", "logs"),
		rng:   rand.New(rand.NewPCG(seed, seed>>1)),
		logs:  []string{"Sentinel Subsystem Standby..."},
	}
}

func (s *Security) ID() types.AppID { return types.AppSecurity }
func (s *Security) Title() string   { return "Sentinel" }
func (s *Security) Init() tea.Cmd   { return nil }

// Monitoring reports whether sensors are linked
func (s *Security) Monitoring() bool {
	return s.camera != nil
}

// Logs returns the newest-first sentinel log
func (s *Security) Logs() []string {
	return s.logs
}

// Close releases both sensors
func (s *Security) Close() error {
	var err error
	if s.camera != nil {
		err = s.camera.Close()
		s.camera = nil
	}
	if s.mic != nil {
		if cerr := s.mic.Close(); err == nil {
			err = cerr
		}
		s.mic = nil
	}
	s.session++
	return err
}

func (s *Security) start() tea.Cmd {
	devs := s.deps.Devices
	return func() tea.Msg {
		cam, err := media.Capture(devs, media.KindCamera, media.Constraints{Audio: true})
		if err != nil {
			return sentinelMsg{err: err}
		}
		// A missing microphone degrades to vision only
		mic, _ := media.Capture(devs, media.KindMicrophone, media.Constraints{Audio: true})
		return sentinelMsg{camera: cam, mic: mic}
	}
}

func (s *Security) scan() tea.Cmd {
	session := s.session
	return tea.Tick(scanInterval, func(time.Time) tea.Msg { return scanTickMsg{session: session} })
}

func (s *Security) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sentinelMsg:
		if msg.err != nil {
			s.err = msg.err
			s.addLog("ERROR: Sensor Access Denied. " + string(media.Classify(msg.err)))
			return s, nil
		}
		s.err = nil
		s.camera, s.mic = msg.camera, msg.mic
		if s.mic != nil {
			s.addLog("Vision & Audio Node Connected.")
		} else {
			s.addLog("Vision Node Connected.")
		}
		return s, s.scan()

	case scanTickMsg:
		if msg.session != s.session || !s.Monitoring() {
			return s, nil
		}
		s.step(s.rng.Float64(), s.rng.IntN(40))
		return s, s.scan()

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.modes.next()
		case "enter", "r":
			if !s.Monitoring() {
				return s, s.start()
			}
		case "s":
			if s.Monitoring() {
				_ = s.Close()
				s.threat = 0
				s.addLog("Sentinel disengaged.")
			}
		case "esc":
			_ = s.Close()
			return s, Launch(types.AppHome)
		}
	}
	return s, nil
}

// step applies one scan sample; roll above 0.9 with magnitude over 20 is an anomaly
func (s *Security) step(roll float64, magnitude int) {
	if roll > 0.9 && magnitude > 20 {
		s.threat = min(100, s.threat+15)
		s.addLog("ANOMALY_DETECTED: Movement Pattern Irregular. " + Simulated)
		return
	}
	s.threat = max(0, s.threat-5)
}

func (s *Security) addLog(line string) {
	entry := fmt.Sprintf("[%s] %s", s.deps.Now().Format("15:04:05"), line)
	s.logs = append([]string{entry}, s.logs...)
	if len(s.logs) > maxSentinelLogs {
		s.logs = s.logs[:maxSentinelLogs]
	}
}

func (s *Security) View() string {
	var b strings.Builder
	b.WriteString(header("SENTINEL GUARD", s.modes))

	switch s.modes.current() {
	case "monitor":
		switch {
		case s.Monitoring():
			fmt.Fprintf(&b, "%s  threat %d%%\n", okStyle.Render("MONITORING "+s.camera.Device().Path), s.threat)
			bar := strings.Repeat("#", s.threat/5) + strings.Repeat(".", 20-s.threat/5)
			style := okStyle
			if s.threat > 50 {
				style = errorStyle
			}
			b.WriteString(style.Render("["+bar+"]") + "\n")
			b.WriteString(mutedStyle.Render("s stop"))
		case s.err != nil:
			b.WriteString(errorStyle.Render(string(media.Classify(s.err))) + "\n" + mutedStyle.Render("r retry"))
		default:
			b.WriteString(mutedStyle.Render("enter engage sensors"))
		}
	case "logs":
		for _, l := range s.logs {
			b.WriteString(l + "\n")
		}
	}
	return b.String()
}
