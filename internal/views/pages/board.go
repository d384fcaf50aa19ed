package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"banktrack/models"
)

func esc(value string) string {
	return templ.EscapeString(value)
}

// Pipeline renders the full tracker page body: the filter controls plus the
// live board.
func Pipeline(view PipelineView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := renderControls(w, view); err != nil {
			return err
		}
		return Board(view).Render(ctx, w)
	})
}

// Board renders the board partial: summary counters, the progress bar, and
// the filtered record list with any open add or edit form. The board is what
// gets re-rendered on every store push.
func Board(view PipelineView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="board">`+"\n"); err != nil {
			return err
		}
		if err := renderCounters(w, view); err != nil {
			return err
		}
		if err := renderProgress(w, view); err != nil {
			return err
		}
		if err := renderAdd(w, view); err != nil {
			return err
		}
		for _, bank := range view.Visible() {
			if bank.ID == view.EditingID {
				if err := renderEditor(w, bank); err != nil {
					return err
				}
				continue
			}
			if err := renderCard(w, bank); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

func renderControls(w io.Writer, view PipelineView) error {
	if _, err := fmt.Fprintf(w, `<form id="controls" class="controls" hx-get="/board" hx-target="#board" hx-swap="outerHTML" hx-trigger="change, submit, sse:pipeline from:body">
<select name="filter">`); err != nil {
		return err
	}
	for _, option := range FilterOptions() {
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			esc(option.Value), selectedAttr(option.Value == view.Filter), esc(option.Label)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</select>
<select name="sort">`); err != nil {
		return err
	}
	for _, option := range SortOptions() {
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			esc(option.Value), selectedAttr(option.Value == view.Sort), esc(option.Label)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `</select>
<input type="search" name="q" placeholder="Search name, location, contact" value="%s">
</form>
`, esc(view.Query))
	return err
}

func renderCounters(w io.Writer, view PipelineView) error {
	counts := view.StageCounts()
	if _, err := io.WriteString(w, `<div class="counters">`); err != nil {
		return err
	}
	for _, stage := range models.Stages() {
		if _, err := fmt.Fprintf(w, `<div class="counter"><strong>%d</strong>%s</div>`,
			counts[stage], esc(StageLabel(stage))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `<div class="counter"><strong>%d</strong>Overdue</div></div>
`, view.OverdueCount())
	return err
}

func renderProgress(w io.Writer, view PipelineView) error {
	_, err := fmt.Fprintf(w, `<p class="meta">%d of %d known milk banks converted</p>
<div class="progress"><span style="width: %d%%"></span></div>
`, view.ConvertedCount(), view.Universe, view.ProgressPercent())
	return err
}

func renderAdd(w io.Writer, view PipelineView) error {
	if !view.ShowAddForm {
		_, err := io.WriteString(w, `<p><button hx-get="/board" hx-vals='{"add": "1"}' hx-include="#controls" hx-target="#board" hx-swap="outerHTML">Add bank</button></p>
`)
		return err
	}

	if _, err := io.WriteString(w, `<form class="card editor" hx-post="/banks" hx-target="#board" hx-swap="outerHTML">
<h3>New bank</h3>
`); err != nil {
		return err
	}
	if err := renderFields(w, models.Bank{}); err != nil {
		return err
	}
	_, err := io.WriteString(w, `<div class="actions">
<button type="submit">Save</button>
<button type="button" hx-get="/board" hx-include="#controls" hx-target="#board" hx-swap="outerHTML">Cancel</button>
</div>
</form>
`)
	return err
}

func renderCard(w io.Writer, bank models.Bank) error {
	cardClass := "card"
	if Overdue(bank, nowFunc()) {
		cardClass = "card overdue"
	}
	_, err := fmt.Fprintf(w, `<div class="%s">
<h3>%s</h3>
<p class="meta">%s · %s · %s</p>
<p class="meta">Pasteurizer: %s · Volume: %s · Bottles: %s</p>
<p class="meta">Next action: %s · Last contact: %s</p>
<p>%s</p>
<div class="actions">
<button hx-get="/board" hx-vals='{"edit": "%s"}' hx-include="#controls" hx-target="#board" hx-swap="outerHTML">Edit</button>
<button hx-delete="/banks/%s" hx-confirm="Delete %s? This cannot be undone." hx-target="#board" hx-swap="outerHTML">Delete</button>
</div>
</div>
`,
		cardClass,
		esc(bank.Name),
		esc(StageLabel(bank.Stage)), esc(DefaultDash(bank.Location)), esc(DefaultDash(bank.Contact)),
		esc(bank.PasteurizerType), esc(VolumeLabel(bank.VolumePotential)), esc(SizeSummary(bank)),
		esc(FormatDate(bank.NextAction)), esc(FormatDate(bank.LastContact)),
		esc(bank.Notes),
		esc(bank.ID),
		esc(bank.ID), esc(bank.Name))
	return err
}

func renderEditor(w io.Writer, bank models.Bank) error {
	if _, err := fmt.Fprintf(w, `<form class="card editor" hx-put="/banks/%s" hx-target="#board" hx-swap="outerHTML">
<h3>Edit %s</h3>
`, esc(bank.ID), esc(bank.Name)); err != nil {
		return err
	}
	if err := renderFields(w, bank); err != nil {
		return err
	}
	_, err := io.WriteString(w, `<div class="actions">
<button type="submit">Save</button>
<button type="button" hx-get="/board" hx-include="#controls" hx-target="#board" hx-swap="outerHTML">Cancel</button>
</div>
</form>
`)
	return err
}

// renderFields writes the shared add/edit form controls, prefilled from the
// provided draft record.
func renderFields(w io.Writer, bank models.Bank) error {
	if _, err := fmt.Fprintf(w, `<label>Name <input name="name" required value="%s"></label>
<label>Location <input name="location" value="%s"></label>
<label>Contact <input name="contact" value="%s"></label>
<label>Email <input type="email" name="email" value="%s"></label>
<label>Phone <input name="phone" value="%s"></label>
<label>Stage <select name="stage">`,
		esc(bank.Name), esc(bank.Location), esc(bank.Contact), esc(bank.Email), esc(bank.Phone)); err != nil {
		return err
	}
	for _, stage := range models.Stages() {
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			esc(stage), selectedAttr(models.NormalizeStage(bank.Stage) == stage), esc(StageLabel(stage))); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</select></label>
<label>Pasteurizer <select name="pasteurizer_type">`); err != nil {
		return err
	}
	for _, pasteurizer := range models.PasteurizerTypes() {
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			esc(pasteurizer), selectedAttr(models.NormalizePasteurizerType(bank.PasteurizerType) == pasteurizer), esc(pasteurizer)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, `</select></label>
<label>Volume potential (bottles/month) <input type="number" name="volume_potential" min="0" value="%d"></label>
<fieldset><legend>Bottle sizes</legend>`, bank.VolumePotential); err != nil {
		return err
	}
	for _, size := range models.BottleSizes() {
		if _, err := fmt.Fprintf(w, `<label><input type="checkbox" name="bottle_sizes" value="%s"%s> %s</label>`,
			esc(size), checkedAttr(bank.HasSize(size)), esc(size)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `</fieldset>
<label>Next action <input type="date" name="next_action" value="%s"></label>
<label>Last contact <input type="date" name="last_contact" value="%s"></label>
<label>Notes <textarea name="notes" rows="3">%s</textarea></label>
`,
		esc(DateInputValue(bank.NextAction)), esc(DateInputValue(bank.LastContact)), esc(bank.Notes))
	return err
}

func selectedAttr(selected bool) string {
	if selected {
		return " selected"
	}
	return ""
}

func checkedAttr(checked bool) string {
	if checked {
		return " checked"
	}
	return ""
}
