// Package xmlfile reads and writes scenario documents in the tool's
// XML format. The published structural schema ships as schema.xsd;
// Decode enforces it strictly and aborts on the first violation, so a
// failed load never leaves partial engine state behind.
package xmlfile

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/de-tools/roi-atlas/pkg/services/cashflow"
	"github.com/de-tools/roi-atlas/pkg/services/dist"
	"github.com/de-tools/roi-atlas/pkg/services/evaluate"
)

// ErrUnknownKind is returned when a cost element carries a
// distribution tag outside the supported families.
var ErrUnknownKind = errors.New("unknown distribution kind")

type summaryDoc struct {
	XMLName      xml.Name  `xml:"Summary"`
	InterestRate string    `xml:"InterestRate"`
	Years        string    `xml:"Years"`
	Iterations   string    `xml:"Iterations"`
	Sheet        *sheetDoc `xml:"CashFlowSheet"`
}

type sheetDoc struct {
	Groups []groupDoc `xml:"CashFlowGroup"`
}

type groupDoc struct {
	Name  string    `xml:"name"`
	Desc  string    `xml:"desc"`
	Items []itemDoc `xml:"CashFlowItem"`
}

type itemDoc struct {
	Name      string   `xml:"name"`
	Desc      string   `xml:"desc"`
	Upfront   *costDoc `xml:"upfrontCost"`
	Recurring *costDoc `xml:"recurringCost"`
}

// costDoc wraps exactly one tagged distribution element.
type costDoc struct {
	Dists []distDoc `xml:",any"`
}

type distDoc struct {
	XMLName   xml.Name
	Mu        *string `xml:"mu"`
	Sigma     *string `xml:"sigma"`
	Value     *string `xml:"value"`
	Alpha     *string `xml:"alpha"`
	StartYear string  `xml:"startYear"`
	EndYear   string  `xml:"endYear"`
}

// Decode parses and validates a scenario document.
func Decode(r io.Reader) (*evaluate.Summary, error) {
	var doc summaryDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("scenario document: %w", err)
	}

	rate, err := parseFloat("InterestRate", doc.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("scenario document: %w", err)
	}
	yearsFloat, err := parseFloat("Years", doc.Years)
	if err != nil {
		return nil, fmt.Errorf("scenario document: %w", err)
	}
	years := int(math.Floor(yearsFloat))
	if years < 0 {
		return nil, fmt.Errorf("scenario document: Years must be non-negative, got %d", years)
	}

	iterations := evaluate.DefaultIterations
	if doc.Iterations != "" {
		itFloat, err := parseFloat("Iterations", doc.Iterations)
		if err != nil {
			return nil, fmt.Errorf("scenario document: %w", err)
		}
		iterations = int(math.Floor(itFloat))
		if iterations <= 0 {
			return nil, fmt.Errorf("scenario document: Iterations must be positive, got %d", iterations)
		}
	}

	if doc.Sheet == nil {
		return nil, fmt.Errorf("scenario document: missing CashFlowSheet element")
	}
	sheet, err := sheetFromDoc(doc.Sheet)
	if err != nil {
		return nil, fmt.Errorf("scenario document: %w", err)
	}

	summary := evaluate.NewSummary(sheet)
	summary.InterestRate = rate
	summary.Years = years
	summary.Iterations = iterations
	return summary, nil
}

// Encode writes a scenario document, omitting active-window bounds
// that sit at their defaults.
func Encode(w io.Writer, s *evaluate.Summary) error {
	doc, err := docFromSummary(s)
	if err != nil {
		return fmt.Errorf("scenario document: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("scenario document: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("scenario document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("scenario document: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// ReadFile loads and validates a scenario document from disk.
func ReadFile(path string) (*evaluate.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario file: %w", err)
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile persists a scenario document to disk.
func WriteFile(path string, s *evaluate.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scenario file: %w", err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func sheetFromDoc(doc *sheetDoc) (*cashflow.Sheet, error) {
	sheet, err := cashflow.NewSheet()
	if err != nil {
		return nil, err
	}
	for _, gd := range doc.Groups {
		if gd.Name == "" {
			return nil, fmt.Errorf("CashFlowGroup: missing name")
		}
		group, err := cashflow.NewGroup(gd.Name, gd.Desc)
		if err != nil {
			return nil, err
		}
		for _, id := range gd.Items {
			item, err := itemFromDoc(id)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", gd.Name, err)
			}
			if err := group.AddItems(item); err != nil {
				return nil, fmt.Errorf("group %q: %w", gd.Name, err)
			}
		}
		if err := sheet.AddGroups(group); err != nil {
			return nil, err
		}
	}
	return sheet, nil
}

func itemFromDoc(doc itemDoc) (*cashflow.Item, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("CashFlowItem: missing name")
	}
	upfront, err := costFromDoc(doc.Upfront, "upfrontCost")
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", doc.Name, err)
	}
	recurring, err := costFromDoc(doc.Recurring, "recurringCost")
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", doc.Name, err)
	}
	return cashflow.NewItem(doc.Name, doc.Desc, upfront, recurring)
}

func costFromDoc(doc *costDoc, element string) (dist.Distribution, error) {
	if doc == nil {
		return nil, fmt.Errorf("missing %s element", element)
	}
	if len(doc.Dists) != 1 {
		return nil, fmt.Errorf("%s must wrap exactly one distribution, got %d", element, len(doc.Dists))
	}
	return distFromDoc(doc.Dists[0])
}

func distFromDoc(doc distDoc) (dist.Distribution, error) {
	start, end, err := parseWindow(doc.StartYear, doc.EndYear)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.XMLName.Local, err)
	}

	switch doc.XMLName.Local {
	case dist.KindGaussian:
		mu, err := parseRequired(doc.XMLName.Local, "mu", doc.Mu)
		if err != nil {
			return nil, err
		}
		sigma, err := parseRequired(doc.XMLName.Local, "sigma", doc.Sigma)
		if err != nil {
			return nil, err
		}
		return &dist.Gaussian{Mu: mu, Sigma: sigma, StartYear: start, EndYear: end}, nil
	case dist.KindConstant:
		value, err := parseRequired(doc.XMLName.Local, "value", doc.Value)
		if err != nil {
			return nil, err
		}
		return &dist.Constant{Value: value, StartYear: start, EndYear: end}, nil
	case dist.KindPareto:
		alpha, err := parseRequired(doc.XMLName.Local, "alpha", doc.Alpha)
		if err != nil {
			return nil, err
		}
		return &dist.Pareto{Alpha: alpha, StartYear: start, EndYear: end}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, doc.XMLName.Local)
	}
}

func docFromSummary(s *evaluate.Summary) (*summaryDoc, error) {
	sheet := &sheetDoc{}
	for _, group := range s.Sheet().AllGroups() {
		gd := groupDoc{Name: group.Name, Desc: group.Desc}
		for _, item := range group.AllItems() {
			upfront, err := distToDoc(item.UpfrontCost())
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", item.Name, err)
			}
			recurring, err := distToDoc(item.RecurringCost())
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", item.Name, err)
			}
			gd.Items = append(gd.Items, itemDoc{
				Name:      item.Name,
				Desc:      item.Desc,
				Upfront:   &costDoc{Dists: []distDoc{upfront}},
				Recurring: &costDoc{Dists: []distDoc{recurring}},
			})
		}
		sheet.Groups = append(sheet.Groups, gd)
	}
	return &summaryDoc{
		InterestRate: formatFloat(s.InterestRate),
		Years:        strconv.Itoa(s.Years),
		Iterations:   strconv.Itoa(s.Iterations),
		Sheet:        sheet,
	}, nil
}

func distToDoc(d dist.Distribution) (distDoc, error) {
	start, end := d.Window()
	doc := distDoc{
		StartYear: windowBound(start, 0),
		EndYear:   infBound(end),
	}
	switch v := d.(type) {
	case *dist.Gaussian:
		doc.XMLName = xml.Name{Local: dist.KindGaussian}
		doc.Mu = ptr(formatFloat(v.Mu))
		doc.Sigma = ptr(formatFloat(v.Sigma))
	case *dist.Constant:
		doc.XMLName = xml.Name{Local: dist.KindConstant}
		doc.Value = ptr(formatFloat(v.Value))
	case *dist.Pareto:
		doc.XMLName = xml.Name{Local: dist.KindPareto}
		doc.Alpha = ptr(formatFloat(v.Alpha))
	default:
		return distDoc{}, fmt.Errorf("%w: %T", ErrUnknownKind, d)
	}
	return doc, nil
}

func parseFloat(element, text string) (float64, error) {
	if text == "" {
		return 0, fmt.Errorf("missing %s element", element)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", element, err)
	}
	return v, nil
}

func parseRequired(kind, field string, text *string) (float64, error) {
	if text == nil || *text == "" {
		return 0, fmt.Errorf("%s: missing %s element", kind, field)
	}
	v, err := strconv.ParseFloat(*text, 64)
	if err != nil {
		return 0, fmt.Errorf("%s/%s: %w", kind, field, err)
	}
	return v, nil
}

// parseWindow maps empty or absent bounds to the defaults: start 0,
// end +Inf.
func parseWindow(start, end string) (float64, float64, error) {
	startYear := 0.0
	if start != "" {
		v, err := strconv.ParseFloat(start, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("startYear: %w", err)
		}
		startYear = v
	}
	endYear := math.Inf(1)
	if end != "" {
		v, err := strconv.ParseFloat(end, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("endYear: %w", err)
		}
		endYear = v
	}
	return startYear, endYear, nil
}

func windowBound(v, defaultValue float64) string {
	if v == defaultValue {
		return ""
	}
	return formatFloat(v)
}

func infBound(v float64) string {
	if math.IsInf(v, 1) {
		return ""
	}
	return formatFloat(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func ptr(s string) *string { return &s }
