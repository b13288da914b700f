package dom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formHTML = `<html><head><title>Acme - Careers</title></head><body>
<form>
  <label for="fn">First Name</label>
  <input id="fn" name="first">
  <textarea name="cover">old</textarea>
  <select name="country">
    <option value="">Choose</option>
    <option value="us">United States</option>
    <option>Canada</option>
  </select>
  <input type="radio" name="remote" value="yes" checked>
  <input type="radio" name="remote" value="no">
  <input type="checkbox" name="terms">
  <input type="hidden" name="token" value="x">
  <div style="display: none"><input name="ghost"></div>
  <p>Own text <b>bold</b> tail</p>
</form>
</body></html>`

func parse(t *testing.T) *Document {
	t.Helper()
	d, err := ParseString(formHTML, "https://jobs.Acme.com:8443/apply?x=1")
	require.NoError(t, err)
	return d
}

func TestParse_AssignsIDs(t *testing.T) {
	d := parse(t)
	controls := d.Find("input, textarea, select")
	require.Len(t, controls, 8)

	seen := map[string]bool{}
	for _, c := range controls {
		id := c.AutofillID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Equal(t, "af-1", controls[0].AutofillID())
}

func TestParse_KeepsExistingIDs(t *testing.T) {
	d, err := ParseString(`<input data-autofill-id="af-7"><input>`, "")
	require.NoError(t, err)
	inputs := d.Find("input")
	assert.Equal(t, "af-7", inputs[0].AutofillID())
	assert.Equal(t, "af-8", inputs[1].AutofillID())
}

func TestDocument_Hostnames(t *testing.T) {
	d := parse(t)
	assert.Equal(t, "jobs.acme.com", d.Hostname())
	assert.Equal(t, "", d.ReferrerHostname())
	d.Referrer = "https://www.acme.com/careers"
	assert.Equal(t, "www.acme.com", d.ReferrerHostname())
	assert.Equal(t, "Acme - Careers", d.Title())
}

func TestDocument_Lookups(t *testing.T) {
	d := parse(t)
	input := d.ByID("fn")
	require.NotNil(t, input)
	assert.Equal(t, "first", input.Name())

	label := d.LabelFor("fn")
	require.NotNil(t, label)
	assert.Equal(t, "First Name", label.Text())

	assert.Nil(t, d.ByID("missing"))
	assert.Nil(t, d.ByID(""))
	assert.True(t, d.ByAutofillID(input.AutofillID()).Is(input))
}

func TestElement_Basics(t *testing.T) {
	d := parse(t)

	p := d.First("p")
	require.NotNil(t, p)
	assert.Equal(t, "Own text  tail", p.DirectText())

	form := d.First("form")
	assert.True(t, form.Contains(p))
	assert.True(t, p.Contains(p))
	assert.False(t, p.Contains(form))
	assert.True(t, p.Parent().Is(form))

	assert.Equal(t, "text", d.ByID("fn").Type())
	assert.Equal(t, "textarea", d.First("textarea").Type())
}

func TestElement_Hidden(t *testing.T) {
	d := parse(t)
	assert.True(t, d.First(`input[name="token"]`).Hidden())
	assert.True(t, d.First(`input[name="ghost"]`).Hidden())
	assert.False(t, d.ByID("fn").Hidden())
}

func TestElement_ValueAndOptions(t *testing.T) {
	d := parse(t)
	sel := d.First("select")
	options := sel.Options()
	require.Len(t, options, 3)
	assert.Equal(t, Option{Value: "us", Text: "United States"}, options[1])
	assert.Equal(t, Option{Value: "Canada", Text: "Canada"}, options[2])
	assert.Equal(t, "", sel.Value())

	assert.Equal(t, "old", d.First("textarea").Value())
	assert.True(t, d.First(`input[value="yes"]`).Checked())
}

func TestApply(t *testing.T) {
	d := parse(t)
	input := d.ByID("fn")
	textarea := d.First("textarea")
	sel := d.First("select")
	no := d.First(`input[value="no"]`)
	terms := d.First(`input[name="terms"]`)

	require.NoError(t, d.Apply(Fill{ElementID: input.AutofillID(), Kind: FillValue, Value: "Jane"}))
	require.NoError(t, d.Apply(Fill{ElementID: textarea.AutofillID(), Kind: FillValue, Value: "new"}))
	require.NoError(t, d.Apply(Fill{ElementID: sel.AutofillID(), Kind: FillSelect, Value: "us"}))
	require.NoError(t, d.Apply(Fill{ElementID: no.AutofillID(), Kind: FillCheck, Checked: true}))
	require.NoError(t, d.Apply(Fill{ElementID: terms.AutofillID(), Kind: FillCheck, Checked: true}))

	assert.Equal(t, "Jane", input.Value())
	assert.Equal(t, "new", textarea.Value())
	assert.Equal(t, "us", sel.Value())
	assert.True(t, no.Checked())
	assert.False(t, d.First(`input[value="yes"]`).Checked())
	assert.True(t, terms.Checked())

	events := d.Events()
	require.Len(t, events, 9)
	assert.Equal(t, Event{ElementID: input.AutofillID(), Type: "input"}, events[0])
	assert.Equal(t, Event{ElementID: input.AutofillID(), Type: "blur"}, events[2])
	assert.Equal(t, Event{ElementID: sel.AutofillID(), Type: "change"}, events[6])
}

func TestApply_Errors(t *testing.T) {
	d := parse(t)
	assert.Error(t, d.Apply(Fill{ElementID: "nope", Kind: FillValue}))
	assert.Error(t, d.Apply(Fill{ElementID: d.First("select").AutofillID(), Kind: FillSelect, Value: "mars"}))
	assert.Error(t, d.Apply(Fill{ElementID: d.ByID("fn").AutofillID(), Kind: "paint"}))
}

func TestApply_TriggerOncePerControl(t *testing.T) {
	d := parse(t)
	id := d.ByID("fn").AutofillID()
	require.NoError(t, d.Apply(Fill{ElementID: id, Kind: FillTrigger}))
	require.NoError(t, d.Apply(Fill{ElementID: id, Kind: FillTrigger}))

	triggers := d.Find("." + TriggerClass)
	require.Len(t, triggers, 1)
	assert.Equal(t, id, triggers[0].AttrOr(TriggerForAttr))
	assert.Empty(t, d.Events())

	require.NoError(t, d.Apply(Fill{ElementID: id, Kind: FillClearTrigger}))
	assert.Empty(t, d.Find("."+TriggerClass))
}

func TestRender(t *testing.T) {
	d := parse(t)
	id := d.ByID("fn").AutofillID()
	require.NoError(t, d.Apply(Fill{ElementID: id, Kind: FillValue, Value: "Jane"}))

	out, err := d.Render()
	require.NoError(t, err)
	assert.Contains(t, out, `value="Jane"`)
	assert.Contains(t, out, `data-autofill-id="af-1"`)
}

func TestRect(t *testing.T) {
	control := Rect{Left: 100, Top: 100, Right: 300, Bottom: 130}
	above := Rect{Left: 100, Top: 70, Right: 200, Bottom: 90}
	right := Rect{Left: 330, Top: 140, Right: 400, Bottom: 160}

	assert.InDelta(t, 10, control.Gap(above), 0.001)
	assert.InDelta(t, math.Sqrt(30*30+10*10), control.Gap(right), 0.001)
	assert.True(t, above.AboveOrLeftOf(control))
	assert.False(t, right.AboveOrLeftOf(control))
	assert.Equal(t, 200.0, control.Width())
	assert.Equal(t, 30.0, control.Height())

	layout := MapLayout{"af-1": control}
	d := parse(t)
	r, ok := layout.Rect(d.ByID("fn"))
	assert.True(t, ok)
	assert.Equal(t, control, r)
	_, ok = layout.Rect(d.First("p"))
	assert.False(t, ok)
}
