package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Page:
		o.printPage(v)
	case Count:
		fmt.Fprintf(o.w, "Count: %d\n", v.Count)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Birthday       int64  `json:"birthday"`
	Banned         bool   `json:"banned"`
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"untilNextLevel"`
}

// Page response type
type Page struct {
	Players    []Player `json:"players"`
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`
	TotalItems int      `json:"totalItems"`
	TotalPages int      `json:"totalPages"`
}

// Count response type
type Count struct {
	Count int `json:"count"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

func formatBirthday(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.DateOnly)
}

func (o *Output) printPlayer(p Player) {
	bannedStr := "no"
	if p.Banned {
		bannedStr = "yes"
	}
	fmt.Fprintf(o.w, "Player: %s (%d)\n", p.Name, p.ID)
	fmt.Fprintf(o.w, "Title: %s\n", p.Title)
	fmt.Fprintf(o.w, "Race: %s\n", p.Race)
	fmt.Fprintf(o.w, "Profession: %s\n", p.Profession)
	fmt.Fprintf(o.w, "Birthday: %s\n", formatBirthday(p.Birthday))
	fmt.Fprintf(o.w, "Banned: %s\n", bannedStr)
	fmt.Fprintf(o.w, "Experience: %d (level %d, %d to next)\n", p.Experience, p.Level, p.UntilNextLevel)
}

func (o *Output) printPage(p Page) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRACE\tPROFESSION\tBIRTHDAY\tEXP\tLEVEL\tBANNED")
	for _, pl := range p.Players {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%t\n",
			pl.ID, pl.Name, pl.Race, pl.Profession, formatBirthday(pl.Birthday),
			pl.Experience, pl.Level, pl.Banned)
	}
	_ = tw.Flush()
	fmt.Fprintf(o.w, "Page %d of %d (%d players)\n", p.PageNumber+1, max(p.TotalPages, 1), p.TotalItems)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
}
