package schema_test

import (
	"testing"

	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wiredProject(t *testing.T) *domain.Project {
	t.Helper()
	p := domain.DefaultProject()
	require.NoError(t, p.AddTemplate(domain.Template{
		ID:      7,
		Name:    "half_adder",
		Inputs:  []string{"a", "b"},
		Outputs: []string{"s", "c"},
		Driver: domain.SubcircuitDriver(map[domain.PortRef]domain.PortRef{
			{Component: 1, Terminal: "and"}: {Component: 0, Terminal: "c"},
			{Component: 2, Terminal: "or"}:  {Component: 0, Terminal: "s"},
		}),
	}))
	require.NoError(t, p.AddTemplate(domain.Template{ID: 8, Name: "blink", Outputs: []string{"q"}, Driver: domain.ScriptDriver("blink.lua")}))

	_, ok := p.Connect(domain.OutputOf(0, 0), domain.InputOf(2, 0))
	require.True(t, ok)
	_, ok = p.Connect(domain.InputOf(2, 1), domain.OutputOf(0, 0))
	require.True(t, ok)
	require.NoError(t, p.AddWire(domain.Wire{
		From:         2,
		FromTerminal: domain.Out(0),
		Points:       []domain.Coord{domain.Pt(3, 0), domain.Pt(3, 1)},
		To:           1,
		ToTerminal:   domain.In(0),
	}))
	return p
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, format := range []schema.Format{schema.FormatJSON, schema.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			p := wiredProject(t)

			data, err := schema.Encode(p, format)
			require.NoError(t, err)

			got, err := schema.Decode(data, format)
			require.NoError(t, err)

			assert.Equal(t, schema.FromProject(p), schema.FromProject(got))
			assert.Nil(t, domain.Diff(p, got))
			assert.Equal(t, p.Wires(), got.Wires())
			assert.Equal(t, []domain.Connection{domain.InputOf(2, 0), domain.InputOf(2, 1)},
				got.Targets(domain.OutputOf(0, 0)))
		})
	}
}

// Every state reachable through the project API must survive a save/load cycle.
func TestEncodeDecode_ReachableStates(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T, p *domain.Project)
	}{
		{"Empty Project", func(t *testing.T, p *domain.Project) {}},
		{"Empty Truth Table", func(t *testing.T, p *domain.Project) {
			require.NoError(t, p.AddTemplate(domain.Template{ID: 9, Name: "const", Outputs: []string{"q"}, Driver: domain.TruthTable()}))
			_, err := p.Place(9, domain.Pt(5, 5))
			require.NoError(t, err)
		}},
		{"Terminal-less Templates", func(t *testing.T, p *domain.Project) {
			require.NoError(t, p.AddTemplate(domain.Template{ID: 5, Name: "adder", Driver: domain.SubcircuitDriver(nil)}))
			require.NoError(t, p.AddTemplate(domain.Template{ID: 6, Name: "blink", Driver: domain.ScriptDriver("blink.lua")}))
		}},
		{"Rejected Wire Leaves No Trace", func(t *testing.T, p *domain.Project) {
			err := p.AddWire(domain.Wire{From: 2, FromTerminal: domain.In(0), To: 0, ToTerminal: domain.Out(0)})
			require.ErrorIs(t, err, domain.ErrTerminalMismatch)
		}},
		{"Labels Orientation And Negative Positions", func(t *testing.T, p *domain.Project) {
			require.NoError(t, p.SetLabel(2, nil))
			require.NoError(t, p.SetOrientation(0, 270))
			require.True(t, p.Move(1, domain.Pt(-3.25, -0.5)))
		}},
		{"Fan-In And Duplicates", func(t *testing.T, p *domain.Project) {
			id, err := p.Place(3, domain.Pt(0, 2))
			require.NoError(t, err)
			for range 2 {
				_, ok := p.Connect(domain.OutputOf(0, 0), domain.InputOf(2, 0))
				require.True(t, ok)
			}
			_, ok := p.Connect(domain.InputOf(2, 0), domain.OutputOf(id, 0))
			require.True(t, ok)
		}},
	}

	for _, tt := range tests {
		for _, format := range []schema.Format{schema.FormatJSON, schema.FormatYAML} {
			t.Run(tt.name+"/"+string(format), func(t *testing.T) {
				p := domain.DefaultProject()
				if tt.name == "Empty Project" {
					p = domain.NewProject()
				}
				tt.build(t, p)

				data, err := schema.Encode(p, format)
				require.NoError(t, err)
				got, err := schema.Decode(data, format)
				require.NoError(t, err, string(data))

				assert.Equal(t, schema.FromProject(p), schema.FromProject(got))
				assert.Equal(t, p.Wires(), got.Wires())
			})
		}
	}
}

func TestEncode_TokensAndOrder(t *testing.T) {
	doc := schema.FromProject(wiredProject(t))

	assert.Equal(t, map[string][]string{"O0:0": {"I2:0", "I2:1"}}, doc.Connections)
	require.Len(t, doc.Wires, 3)
	assert.Equal(t, "O2:0", doc.Wires[2].From)
	assert.Equal(t, "I1:0", doc.Wires[2].To)

	ids := make([]uint64, 0, len(doc.Templates))
	for _, tpl := range doc.Templates {
		ids = append(ids, tpl.ID)
	}
	assert.Equal(t, []uint64{0, 1, 2, 3, 4, 7, 8}, ids)

	var instances []uint64
	for _, pl := range doc.Placements {
		instances = append(instances, pl.Instance)
	}
	assert.Equal(t, []uint64{0, 1, 2}, instances)

	adder := doc.Templates[5]
	require.Len(t, adder.Driver.Wiring, 2)
	assert.Equal(t, uint64(1), adder.Driver.Wiring[0].From.Component)
}

func TestDecode_YAMLDocument(t *testing.T) {
	data := []byte(`
templates:
  - id: 1
    name: and
    inputs: [a, b]
    outputs: [and]
    driver: {kind: truth_table, truth: {0: 0, 1: 0, 2: 0, 3: 1}}
  - id: 3
    name: input
    outputs: [q]
    driver: {kind: input}
placements:
  - {instance: 0, template: 3, pos: {x: 0, y: 0}}
  - {instance: 2, template: 1, label: And, pos: {x: 2, y: 0}}
connections:
  o0:0:
    - i2:0
    - I2:1
`)

	p, err := schema.Decode(data, schema.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	pl, ok := p.Placement(2)
	require.True(t, ok)
	require.NotNil(t, pl.Label)
	assert.Equal(t, "And", *pl.Label)

	tpl, ok := p.Template(1)
	require.True(t, ok)
	assert.Equal(t, uint64(1), tpl.Driver.Truth[3])

	assert.Equal(t, []domain.Connection{domain.InputOf(2, 0), domain.InputOf(2, 1)},
		p.Targets(domain.OutputOf(0, 0)))
	assert.Empty(t, p.Wires(), "connections never imply wires")

	id, err := p.Place(1, domain.Pt(5, 5))
	require.NoError(t, err)
	assert.Equal(t, domain.InstanceID(3), id)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format schema.Format
		data   string
		want   string
	}{
		{
			name:   "Malformed JSON",
			format: schema.FormatJSON,
			data:   `{"templates": [`,
			want:   "decode json document",
		},
		{
			name:   "Unknown Field",
			format: schema.FormatYAML,
			data:   "templates: []\ngates: []\n",
			want:   "gates",
		},
		{
			name:   "Unknown Template",
			format: schema.FormatYAML,
			data:   "placements:\n  - {instance: 0, template: 9}\n",
			want:   `"placements[0].template": unknown template`,
		},
		{
			name:   "Bad Token Key",
			format: schema.FormatJSON,
			data:   `{"templates": [], "placements": [], "connections": {"X0:0": []}}`,
			want:   "not a valid output token",
		},
		{
			name:   "Output Used As Target",
			format: schema.FormatJSON,
			data:   `{"templates": [], "placements": [], "connections": {"O0:0": ["O1:0"]}}`,
			want:   "not a valid input token",
		},
		{
			name:   "Dangling Instance",
			format: schema.FormatYAML,
			data: `
templates: [{id: 3, name: input, outputs: [q], driver: {kind: input}}]
placements: [{instance: 0, template: 3}]
connections:
  O0:0: ["I5:0"]
`,
			want: "unknown instance (got I5:0)",
		},
		{
			name:   "Terminal Out Of Range",
			format: schema.FormatYAML,
			data: `
templates: [{id: 3, name: input, outputs: [q], driver: {kind: input}}]
placements: [{instance: 0, template: 3}]
wires:
  - from: O0:1
    to: I0:0
`,
			want: "terminal out of range",
		},
		{
			name:   "Duplicate Template",
			format: schema.FormatYAML,
			data: `
templates:
  - {id: 3, name: input, outputs: [q], driver: {kind: input}}
  - {id: 3, name: other, outputs: [q], driver: {kind: input}}
`,
			want: "duplicate id",
		},
		{
			name:   "Unknown Driver Kind",
			format: schema.FormatYAML,
			data:   "templates: [{id: 0, name: x, driver: {kind: lut}}]\n",
			want:   "must be one of",
		},
		{
			name:   "Reversed Wire",
			format: schema.FormatYAML,
			data:   "wires: [{from: \"I2:0\", to: \"O0:0\"}]\n",
			want:   "not a valid output token",
		},
		{
			name:   "Script Without Source",
			format: schema.FormatYAML,
			data:   "templates: [{id: 0, name: x, driver: {kind: script}}]\n",
			want:   "required when Kind is script",
		},
		{
			name:   "Unsupported Format",
			format: schema.Format("toml"),
			data:   "",
			want:   "unsupported document format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := schema.Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	doc := &schema.Document{
		Templates: []schema.TemplateDoc{
			{ID: 0, Name: "", Driver: schema.DriverDoc{Kind: "input"}},
			{ID: 1, Name: "ok", Driver: schema.DriverDoc{}},
		},
	}

	err := schema.Validate(doc)
	require.Error(t, err)

	errs := schema.ValidationErrors(err)
	require.Len(t, errs, 2)

	var keys []string
	for _, e := range errs {
		var ve *schema.ValidationError
		require.ErrorAs(t, e, &ve)
		assert.Equal(t, "required", ve.Reason)
		keys = append(keys, ve.Key)
	}
	assert.ElementsMatch(t, []string{"templates[0].name", "templates[1].driver.kind"}, keys)
}

func TestValidate_Nil(t *testing.T) {
	err := schema.Validate(nil)
	require.Error(t, err)
	assert.Len(t, schema.ValidationErrors(err), 1)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]schema.Format{
		"json": schema.FormatJSON,
		"JSON": schema.FormatJSON,
		"yaml": schema.FormatYAML,
		"yml":  schema.FormatYAML,
	} {
		got, err := schema.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := schema.ParseFormat("xml")
	assert.ErrorIs(t, err, schema.ErrUnsupportedFormat)

	assert.Equal(t, schema.FormatJSON, schema.FormatFromPath("circuit.JSON"))
	assert.Equal(t, schema.FormatYAML, schema.FormatFromPath("circuit.yaml"))
}
