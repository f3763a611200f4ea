package logicx_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/logicx"
	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/interaction"
	"github.com/aretw0/logicx/pkg/netlist"
	"github.com/aretw0/logicx/pkg/schema"
)

func ev(x, y float64) interaction.PointerEvent {
	return interaction.PointerEvent{Pos: domain.Pt(x, y), Button: interaction.ButtonPrimary}
}

func TestEditor_DefaultScenario(t *testing.T) {
	ed := logicx.New()

	p := ed.Project()
	assert.Equal(t, 3, p.Len())
	assert.Zero(t, p.ConnectionCount())
	assert.Empty(t, p.Wires())

	// Drag the gate one unit right and down.
	require.True(t, ed.PressInstance(ev(100, 100), 2))
	assert.True(t, ed.Move(ev(135, 135)))
	assert.True(t, ed.Release(ev(135, 135)))

	pl, ok := ed.Project().Placement(2)
	require.True(t, ok)
	assert.Equal(t, domain.Pt(3, 1), pl.Pos)

	// Wire the input pin into the gate.
	require.True(t, ed.PressTerminal(ev(0, 0), domain.OutputOf(0, 0)))
	w, ok := ed.ReleaseOnTerminal(ev(10, 10), domain.InputOf(2, 0))
	require.True(t, ok)
	assert.Equal(t, domain.InstanceID(0), w.From)

	p = ed.Project()
	assert.Equal(t, []domain.Connection{domain.InputOf(2, 0)}, p.Targets(domain.OutputOf(0, 0)))
	assert.Len(t, p.Wires(), 1)
}

func TestEditor_ProjectIsSnapshot(t *testing.T) {
	ed := logicx.New()
	p := ed.Project()
	require.NoError(t, p.Delete(2))

	assert.Equal(t, 3, ed.Project().Len())
}

func TestEditor_SaveLoad(t *testing.T) {
	for _, format := range []schema.Format{schema.FormatJSON, schema.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			src := logicx.New()
			src.PressTerminal(ev(0, 0), domain.OutputOf(0, 0))
			src.ReleaseOnTerminal(ev(0, 0), domain.InputOf(2, 1))

			data, err := src.Save(format)
			require.NoError(t, err)

			dst := logicx.New()
			require.NoError(t, dst.Load(data, format))

			assert.Equal(t, src.Project().Connections(), dst.Project().Connections())
			assert.Equal(t, src.Project().Wires(), dst.Project().Wires())
		})
	}
}

func TestEditor_LoadFailureLeavesProject(t *testing.T) {
	ed := logicx.New()
	ed.PressTerminal(ev(0, 0), domain.OutputOf(0, 0))
	ed.ReleaseOnTerminal(ev(0, 0), domain.InputOf(2, 0))
	before := ed.Project()

	var events int
	ed.Subscribe(func(*domain.ChangeEvent) { events++ })

	err := ed.Load([]byte(`{"placements": [{"instance": 0, "template": 99}]}`), schema.FormatJSON)
	require.Error(t, err)
	assert.NotEmpty(t, schema.ValidationErrors(err))

	err = ed.Load([]byte("not: [valid"), schema.FormatYAML)
	require.Error(t, err)

	after := ed.Project()
	assert.Nil(t, domain.Diff(before, after))
	assert.Equal(t, before.Connections(), after.Connections())
	assert.Zero(t, events)
}

func TestEditor_LoadDropsLiveGesture(t *testing.T) {
	ed := logicx.New()
	data, err := ed.Save(schema.FormatJSON)
	require.NoError(t, err)

	require.True(t, ed.PressTerminal(ev(0, 0), domain.OutputOf(0, 0)))
	require.NoError(t, ed.Load(data, schema.FormatJSON))

	_, active := ed.Session()
	assert.False(t, active)
	_, pending := ed.Pending()
	assert.False(t, pending)
}

func TestEditor_Reset(t *testing.T) {
	ed := logicx.New()
	require.NoError(t, ed.Edit("delete", func(p *domain.Project) error {
		return p.Delete(1)
	}))
	assert.Equal(t, 2, ed.Project().Len())

	ed.Reset()
	assert.Nil(t, domain.Diff(domain.DefaultProject(), ed.Project()))
}

func TestEditor_Subscribe(t *testing.T) {
	ed := logicx.New()

	var causes []string
	unsubscribe := ed.Subscribe(func(e *domain.ChangeEvent) {
		causes = append(causes, e.Cause)
		// Subscribers run outside the lock.
		_ = ed.Project()
	})

	ed.PressInstance(ev(0, 0), 2)
	ed.Move(ev(35, 0))
	ed.Release(ev(35, 0))
	ed.PressTerminal(ev(0, 0), domain.OutputOf(0, 0))
	ed.ReleaseOnTerminal(ev(0, 0), domain.InputOf(2, 0))
	ed.Reset()

	assert.Equal(t, []string{"move", "connect", "reset"}, causes)

	unsubscribe()
	ed.Reset()
	assert.Len(t, causes, 3)
}

func TestEditor_ChangeDiff(t *testing.T) {
	ed := logicx.New()

	var last *domain.ChangeEvent
	ed.Subscribe(func(e *domain.ChangeEvent) { last = e })

	require.NoError(t, ed.Edit("place", func(p *domain.Project) error {
		_, err := p.Place(0, domain.Pt(4, 4))
		return err
	}))
	require.NotNil(t, last)
	require.NotNil(t, last.Diff)
	assert.Equal(t, []domain.InstanceID{3}, last.Diff.Added)

	err := ed.Edit("place", func(p *domain.Project) error {
		_, err := p.Place(99, domain.Pt(0, 0))
		return err
	})
	assert.ErrorIs(t, err, domain.ErrDanglingReference)
}

func TestEditor_EditRollsBackOnError(t *testing.T) {
	ed := logicx.New()
	require.True(t, ed.PressInstance(interaction.PointerEvent{Pos: domain.Pt(0, 0)}, 2))

	var events int
	ed.Subscribe(func(*domain.ChangeEvent) { events++ })

	err := ed.Edit("batch", func(p *domain.Project) error {
		require.NoError(t, p.Delete(0))
		p.Move(2, domain.Pt(8, 8))
		_, ok := p.Connect(domain.OutputOf(1, 0), domain.InputOf(2, 0))
		require.False(t, ok)
		_, err := p.Place(99, domain.Pt(0, 0))
		return err
	})
	require.ErrorIs(t, err, domain.ErrDanglingReference)
	assert.Zero(t, events, "a failed edit publishes nothing")

	p := ed.Project()
	assert.Equal(t, 3, p.Len())
	pl, _ := p.Placement(2)
	assert.Equal(t, domain.Pt(2, 0), pl.Pos)

	// The live drag still drives the restored project.
	_, live := ed.Session()
	require.True(t, live)
	require.True(t, ed.Move(interaction.PointerEvent{Pos: domain.Pt(35, 0)}))
	pl, _ = ed.Project().Placement(2)
	assert.Equal(t, domain.Pt(3, 0), pl.Pos)
	assert.Equal(t, 1, events)
}

func TestEditor_Hooks(t *testing.T) {
	var connects, drops int
	ed := logicx.New(logicx.WithHooks(domain.Hooks{
		OnConnect: func(*domain.ConnectEvent) { connects++ },
		OnDrop:    func(*domain.DropEvent) { drops++ },
	}))

	ed.PressTerminal(ev(0, 0), domain.OutputOf(0, 0))
	ed.ReleaseOnTerminal(ev(0, 0), domain.InputOf(2, 0))
	ed.PressTerminal(ev(0, 0), domain.OutputOf(0, 0))
	ed.ReleaseOnTerminal(ev(0, 0), domain.OutputOf(2, 0))

	assert.Equal(t, 1, connects)
	assert.Equal(t, 1, drops)
}

func TestEditor_ViewOptions(t *testing.T) {
	view := interaction.DefaultView()
	view.GridScale = 10
	view.Snap = false

	ed := logicx.New(
		logicx.WithView(view),
		logicx.WithViewport(interaction.StaticViewport{X: 5, Y: 5}),
	)
	assert.Equal(t, 10.0, ed.View().GridScale)

	ed.PressInstance(ev(0, 0), 2)
	ed.Move(ev(15, 5))
	ed.Release(ev(15, 5))
	pl, _ := ed.Project().Placement(2)
	assert.Equal(t, domain.Pt(3.5, 0.5), pl.Pos)

	ed.PressTerminal(ev(20, 30), domain.OutputOf(0, 0))
	pw, ok := ed.Pending()
	require.True(t, ok)
	assert.Equal(t, domain.Pt(15, 25), pw.To)

	ed.SetEdit(false)
	ed.SetSnap(true)
	ed.SetGridScale(70)
	v := ed.View()
	assert.False(t, v.Edit)
	assert.True(t, v.Snap)
	assert.Equal(t, 70.0, v.GridScale)
}

func TestEditor_Snapshots(t *testing.T) {
	ctx := context.Background()
	ed := logicx.New(logicx.WithProject(domain.NewProject()))
	assert.Zero(t, ed.Project().Len())

	ed.Reset()
	require.NoError(t, ed.Snapshot(ctx, "base"))

	require.NoError(t, ed.Edit("delete", func(p *domain.Project) error {
		return p.Delete(0)
	}))
	require.NoError(t, ed.Restore(ctx, "base"))
	assert.Equal(t, 3, ed.Project().Len())

	names, err := ed.Snapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, names)

	require.NoError(t, ed.DeleteSnapshot(ctx, "base"))
	assert.ErrorIs(t, ed.Restore(ctx, "base"), domain.ErrProjectNotFound)
}

func TestEditor_ApplyNetlist(t *testing.T) {
	ed := logicx.New()
	n, err := netlist.ParseString("O0:0 -> I2:0, I2:1\nO2:0 -> O1:0\n")
	require.NoError(t, err)

	var causes []string
	ed.Subscribe(func(e *domain.ChangeEvent) { causes = append(causes, e.Cause) })

	applied, err := ed.ApplyNetlist(n)
	assert.Equal(t, 2, applied)
	assert.ErrorIs(t, err, netlist.ErrRejected)
	assert.Equal(t, []string{"netlist"}, causes)
	assert.Equal(t, 2, ed.Project().ConnectionCount())
}

func TestEditor_Graph(t *testing.T) {
	ed := logicx.New()
	ed.PressInstance(ev(0, 0), 2)

	out := ed.Graph()
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "class n2 dragged;")
}

func TestEditor_ConcurrentUse(t *testing.T) {
	ed := logicx.New()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ed.PressInstance(ev(0, 0), 2)
				ed.Move(ev(float64(j), 0))
				ed.Release(ev(float64(j), 0))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := ed.Save(schema.FormatJSON)
				assert.NoError(t, err)
				_ = ed.Graph()
			}
		}()
	}
	wg.Wait()

	_, active := ed.Session()
	assert.False(t, active)
}
