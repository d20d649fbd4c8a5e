package panels

import "github.com/GriffinCanCode/AuraOS/internal/shared/types"

// Tile is a launcher entry on the home grid
type Tile struct {
	App   types.AppID
	Label string
	Sub   string
}

// Launcher is the home grid in display order
var Launcher = []Tile{
	{types.AppSecurity, "Sentinel", "Security"},
	{types.AppChat, "AI Link", "Interface"},
	{types.AppStorage, "Storage", "Data Core"},
	{types.AppCamera, "Lens", "Optical"},
	{types.AppExtensions, "Market", "Extensions"},
	{types.AppFiles, "Vault", "Files"},
	{types.AppVideo, "Cinema", "Video"},
	{types.AppBooks, "Books", "Library"},
	{types.AppContent, "Social", "Mesh Feed"},
	{types.AppTerminal, "System", "CLI Pro"},
	{types.AppMaps, "Tactical", "GPS Maps"},
	{types.AppInbox, "Inbox", "Comms"},
}

// Game is an installable extension shown on home once installed
type Game struct {
	ID    string
	Title string
	Price string
}

// Games is the market's game catalog
var Games = []Game{
	{"game_soccer_elite", "Soccer Elite X", "$9.99"},
	{"game_mortal_combat", "Mortal Combat: Aura", "$14.99"},
	{"game_cyber_kart", "Cyber Kart 3000", "$4.99"},
}

// GiftCards are the credit top-up amounts
var GiftCards = []float64{10, 25, 50, 100}

func gameByID(id string) (Game, bool) {
	for _, g := range Games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}
