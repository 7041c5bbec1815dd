package order

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

const (
	BranchLebanon = "lebanon"
	BranchCyprus  = "cyprus"

	waBaseURL       = "https://wa.me/"
	defaultCurrency = "USD"
)

type Line struct {
	ProductID string
	Name      string
	Qty       int
	Size      string
	UnitPrice *decimal.Decimal
	Currency  string
}

// Subtotal is the line price times quantity, or nil without a price.
func (l Line) Subtotal() *decimal.Decimal {
	if l.UnitPrice == nil {
		return nil
	}
	v := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
	return &v
}

func (l Line) priceText() string {
	if l.UnitPrice == nil {
		return ""
	}
	return l.UnitPrice.StringFixed(2) + " " + l.currency()
}

func (l Line) currency() string {
	if l.Currency == "" {
		return defaultCurrency
	}
	return l.Currency
}

func (l Line) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %d × %s", l.Qty, l.Name)
	if l.Size != "" {
		fmt.Fprintf(&b, " (%s)", l.Size)
	}
	if p := l.priceText(); p != "" {
		b.WriteString(" – " + p)
	}
	return b.String()
}

// LineFor builds an order line from a catalog product.
func LineFor(p *model.Product, qty int) Line {
	l := Line{ProductID: p.ID, Name: p.Name, Qty: qty, UnitPrice: p.Price, Currency: p.Currency}
	if l.Name == "" {
		l.Name = p.ID
	}
	if p.GramsPerPack > 0 {
		l.Size = strconv.FormatFloat(p.GramsPerPack, 'f', -1, 64) + "g"
	}
	return l
}

type Contact struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// Labels carries the localized fixed strings of an order message.
type Labels struct {
	Summary  string
	Greeting string // one %s verb for the branch name
	Intro    string
	Total    string // one %s verb for the amount
}

var DefaultLabels = Labels{
	Summary:  "Order Summary",
	Greeting: "Hello %s,",
	Intro:    "I'd like to order:",
	Total:    "Total: %s",
}

type Request struct {
	Branch  string
	Number  string
	Lines   []Line
	Contact Contact
	Labels  Labels
}

type Composed struct {
	Preview string
	Message string
	URL     string
	// Totals holds the summed price per currency for priced lines.
	Totals map[string]decimal.Decimal
}

func NormalizeBranch(branch string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(branch)) {
	case "", BranchLebanon:
		return BranchLebanon, nil
	case BranchCyprus:
		return BranchCyprus, nil
	default:
		return "", fmt.Errorf("branch must be lebanon or cyprus")
	}
}

func BranchName(branch string) string {
	if strings.EqualFold(branch, BranchCyprus) {
		return "Royal Barf Cyprus"
	}
	return "Royal Barf Lebanon"
}

// Compose renders the preview, the outgoing message and its wa.me link.
func Compose(req Request) (Composed, error) {
	lines := make([]Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.Qty < 0 {
			return Composed{}, fmt.Errorf("quantity for %s must be >= 0", l.Name)
		}
		if l.Qty > 0 {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return Composed{}, fmt.Errorf("specify a quantity for at least one item")
	}
	number := strings.TrimLeft(strings.TrimSpace(req.Number), "+")
	if number == "" {
		return Composed{}, fmt.Errorf("destination number is required")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return Composed{}, fmt.Errorf("destination number must contain digits only")
		}
	}
	labels := req.Labels
	if labels.Summary == "" {
		labels = DefaultLabels
	}
	branchName := BranchName(req.Branch)

	totals := map[string]decimal.Decimal{}
	for _, l := range lines {
		if sub := l.Subtotal(); sub != nil {
			totals[l.currency()] = totals[l.currency()].Add(*sub)
		}
	}
	totalText := formatTotals(totals)

	var preview strings.Builder
	preview.WriteString(branchName + "\n\n" + labels.Summary + "\n")
	for _, l := range lines {
		preview.WriteString(l.text() + "\n")
	}
	if totalText != "" {
		preview.WriteString(fmt.Sprintf(labels.Total, totalText) + "\n")
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf(labels.Greeting, branchName) + "\n")
	msg.WriteString(labels.Intro + "\n")
	for _, l := range lines {
		msg.WriteString(l.text() + "\n")
	}
	if totalText != "" {
		msg.WriteString(fmt.Sprintf(labels.Total, totalText) + "\n")
	}

	contact := contactLines(req.Contact)
	if len(contact) > 0 {
		preview.WriteString("\n" + strings.Join(contact, "\n"))
		msg.WriteString("\n" + strings.Join(contact, "\n"))
	}

	message := strings.TrimRight(msg.String(), "\n")
	return Composed{
		Preview: strings.TrimRight(preview.String(), "\n"),
		Message: message,
		URL:     waBaseURL + number + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20"),
		Totals:  totals,
	}, nil
}

func contactLines(c Contact) []string {
	out := make([]string, 0, 5)
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, label+": "+v)
		}
	}
	add("Name", c.Name)
	add("Phone", c.Phone)
	add("Email", c.Email)
	add("Address", c.Address)
	add("Notes", c.Notes)
	return out
}

func formatTotals(totals map[string]decimal.Decimal) string {
	if len(totals) == 0 {
		return ""
	}
	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	parts := make([]string, 0, len(currencies))
	for _, c := range currencies {
		v := totals[c]
		parts = append(parts, v.StringFixed(2)+" "+c)
	}
	return strings.Join(parts, " + ")
}

// HistoryEntry converts composed lines into an order history record.
func HistoryEntry(id string, at time.Time, branch string, lines []Line, c Contact, recurring bool) model.Order {
	items := make([]model.OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		items = append(items, model.OrderLine{ProductID: l.ProductID, Name: l.Name, Qty: l.Qty, Size: l.Size, Price: l.priceText()})
	}
	return model.Order{
		ID:        id,
		At:        at,
		Branch:    branch,
		Items:     items,
		Address:   strings.TrimSpace(c.Address),
		Notes:     strings.TrimSpace(c.Notes),
		Recurring: recurring,
	}
}
