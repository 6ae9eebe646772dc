package pipeline

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noktah-inovasi/contentops/internal/lookup"
	"github.com/noktah-inovasi/contentops/internal/model"
)

// Content plan column headers. The plans are authored by hand, so reads go
// through cell() to tolerate stray whitespace.
const (
	colTopic       = "Topik"
	colDate        = "Tanggal"
	colTime        = "Waktu"
	colForm        = "Bentuk"
	colCreator     = "Creator"
	colFormat      = "Format"
	colPurpose     = "Purpose"
	colTheme       = "Theme"
	colStrategic   = "Strategic Application"
	colPersonnel   = "Kebutuhan Personil"
	colVisual      = "Visualisasi Konten"
	colCaption     = "Caption"
	colApproval    = "Approval"
	colReference   = "Link Referensi"
	placeholderSum = "Content Asset"
)

// descriptionColumns is the fixed order of labeled paragraphs in a work
// item's description.
var descriptionColumns = []string{
	colDate, colTime, colForm, colCreator, colFormat, colPurpose, colTheme,
	colStrategic, colPersonnel, colVisual, colCaption, colApproval, colReference,
}

// trackerDateFormats are the accepted publication date layouts, tried in
// order. Day-first layouts precede month-first because the plans are written
// day-first; the month-first variants cover imported rows.
var trackerDateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"02/01/06",
	"01/02/06",
	"02-01-06",
}

// ParseTrackerDate parses a content plan date cell against the accepted
// layouts in order.
func ParseTrackerDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range trackerDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

const trackerDateLayout = "2006-01-02"

// ConvertOptions binds the tracker constants the transform emits into every
// work item.
type ConvertOptions struct {
	ProjectKey  string
	IssueTypeID string
	PriorityID  string
	Now         func() time.Time
}

func (o ConvertOptions) withDefaults() ConvertOptions {
	if o.PriorityID == "" {
		o.PriorityID = "5"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// ConvertPlans transforms every fetched plan's rows into work items. The
// transform is deterministic and total: every non-empty row yields exactly
// one item, lookup misses degrade the affected field instead of failing the
// row, and only rows with no content at all are set aside as row errors.
// Plans that carry a fetch error or no rows are skipped entirely.
func ConvertPlans(plans []model.ClientPlan, tables *lookup.Tables, opts ConvertOptions) []model.ClientConversion {
	opts = opts.withDefaults()

	var conversions []model.ClientConversion
	for _, plan := range plans {
		if plan.Error != "" || len(plan.Rows) == 0 {
			continue
		}
		conversions = append(conversions, convertPlan(plan, tables, opts))
	}
	return conversions
}

func convertPlan(plan model.ClientPlan, tables *lookup.Tables, opts ConvertOptions) model.ClientConversion {
	conv := model.ClientConversion{
		ClientName: plan.ClientName,
		DocumentID: plan.DocumentID,
	}

	for i, row := range plan.Rows {
		if rowEmpty(row) {
			conv.RowErrors = append(conv.RowErrors, model.RowError{
				RowIndex: i,
				Error:    "empty row",
			})
			continue
		}
		conv.Items = append(conv.Items, convertRow(row, plan.ClientName, tables, opts))
	}

	zap.L().Info("convert: plan transformed",
		zap.String("client", plan.ClientName),
		zap.Int("rows", len(plan.Rows)),
		zap.Int("items", len(conv.Items)),
		zap.Int("row_errors", len(conv.RowErrors)),
	)
	return conv
}

func convertRow(row model.ContentRow, clientName string, tables *lookup.Tables, opts ConvertOptions) model.WorkItem {
	item := model.WorkItem{
		Fields: model.WorkItemFields{
			Project:   model.ProjectRef{Key: opts.ProjectKey},
			IssueType: model.IssueTypeRef{ID: opts.IssueTypeID},
			Priority:  &model.PriorityRef{ID: opts.PriorityID},
		},
		Meta: model.WorkItemMeta{
			ClientName:  clientName,
			ConvertedAt: opts.Now().UTC(),
			OriginalRow: row,
		},
	}

	topic := cell(row, colTopic)
	if topic == "" {
		topic = placeholderSum
	}
	item.Fields.Summary = topic

	if id, ok := tables.ComponentID(clientName); ok {
		item.Fields.Components = []model.ComponentRef{{ID: id}}
		item.Meta.ComponentID = id
	}

	// An unparseable date passes through raw so the tracker's own validation
	// reports it; start and due derive only from a parsed date.
	rawDate := cell(row, colDate)
	if pub, ok := ParseTrackerDate(rawDate); ok {
		item.Fields.PublicationDate = pub.Format(trackerDateLayout)
		item.Fields.StartDate = pub.AddDate(0, 0, -7).Format(trackerDateLayout)
		item.Fields.DueDate = pub.AddDate(0, 0, -1).Format(trackerDateLayout)
	} else {
		item.Fields.PublicationDate = rawDate
	}

	item.Fields.ContentType = cell(row, colForm)

	if name, id, ok := tables.FieldAssociate(clientName); ok {
		item.Fields.FieldAssociate = &model.UserRef{AccountID: id}
		item.Fields.Assignee = &model.UserRef{AccountID: id}
		item.Meta.FieldAssociateName = name
	}
	if name, id, ok := tables.ContentEditor(clientName); ok {
		item.Fields.ContentEditor = &model.UserRef{AccountID: id}
		item.Meta.ContentEditorName = name
	}
	if id, ok := tables.ReporterID(); ok {
		item.Fields.Reporter = &model.UserRef{AccountID: id}
	}

	item.Fields.Description = buildDescription(row)
	return item
}

// buildDescription assembles the labeled-paragraph description from the
// row's descriptive columns, in fixed order, skipping empty cells.
func buildDescription(row model.ContentRow) *model.ADFDoc {
	doc := model.NewADFDoc()
	for _, col := range descriptionColumns {
		if v := cell(row, col); v != "" {
			doc.AddLabeledParagraph(col, v)
		}
	}
	if len(doc.Content) == 0 {
		return nil
	}
	return doc
}

// cell reads a column with normalized text, tolerating headers that were
// themselves authored with stray spaces.
func cell(row model.ContentRow, col string) string {
	if v, ok := row[col]; ok {
		return NormalizeText(v)
	}
	for k, v := range row {
		if strings.TrimSpace(k) == col {
			return NormalizeText(v)
		}
	}
	return ""
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText trims a cell value, collapses runs of spaces and tabs, and
// caps consecutive newlines at two. Hand-authored plans carry all three.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func rowEmpty(row model.ContentRow) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
