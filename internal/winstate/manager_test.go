package winstate

import (
	"testing"
	"time"

	"github.com/chess10kp/xpdesk/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func storefront() (*schedule.Virtual, *fakePanel, *fakePanel, *fakePanel) {
	clock := schedule.NewVirtual()
	products := newPanel(clock, "products", "Products.exe", "🛒")
	about := newPanel(clock, "about", "About Us", "ℹ️")
	contact := newPanel(clock, "contact", "Contact", "✉️")
	return clock, products, about, contact
}

func assertExclusive(t *testing.T, m *Manager) {
	t.Helper()
	for _, id := range m.minimized.ids() {
		_, inClosed := m.closed.get(id)
		assert.False(t, inClosed, "id %s in both registries", id)
	}
	for _, w := range m.order {
		if w.State == StateOpen {
			_, inMin := m.minimized.get(w.ID)
			_, inClosed := m.closed.get(w.ID)
			assert.False(t, inMin || inClosed, "open window %s is registered", w.ID)
		}
	}
}

func TestBindAssignsStableIDs(t *testing.T) {
	_, products, about, contact := storefront()
	h := newHarness(products, about, contact)

	assert.Equal(t, "window-products-products-exe", h.id(products))
	assert.Equal(t, "window-about-about-us", h.id(about))
	assert.Equal(t, "window-contact-contact", h.id(contact))
	assert.Len(t, h.mgr.Windows(), 3)
	assert.Equal(t, "Start", h.start.tooltip)
	assert.NotNil(t, h.start.onClick)
}

func TestMinimizeRestoreRoundTrip(t *testing.T) {
	_, products, about, _ := storefront()
	h := newHarness(products, about)
	id := h.id(products)

	h.mgr.Minimize(products)
	assert.Equal(t, StateMinimizing, h.state(products))
	assert.True(t, products.HasClass(ClassMinimizing))
	assert.True(t, products.HasClass(ClassTransition))
	assert.Empty(t, h.taskbar.entries)

	h.clock.Advance(499 * ms)
	assert.Equal(t, StateMinimizing, h.state(products))

	h.clock.Advance(1 * ms)
	assert.Equal(t, StateMinimized, h.state(products))
	assert.True(t, products.HasClass(ClassMinimized))
	assert.False(t, products.HasClass(ClassMinimizing))
	assert.False(t, products.HasClass(ClassTransition))
	require.Contains(t, h.taskbar.entries, id)
	assert.Equal(t, "Products.exe", h.taskbar.entries[id].title)
	assert.Equal(t, "🛒", h.taskbar.entries[id].icon)
	assertExclusive(t, h.mgr)

	h.mgr.Restore(id)
	assert.Equal(t, StateRestoring, h.state(products))
	assert.NotContains(t, h.taskbar.entries, id)
	_, stillMinimized := h.mgr.minimized.get(id)
	assert.False(t, stillMinimized)

	h.clock.Advance(500 * ms)
	assert.Equal(t, StateOpen, h.state(products))
	assert.False(t, products.HasClass(ClassRestoring))
	assert.False(t, products.HasClass(ClassMinimized))
	assert.Equal(t, "Start", h.start.tooltip)
	assertExclusive(t, h.mgr)
}

func TestTaskbarActivationRestores(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)
	id := h.id(products)

	h.mgr.Minimize(products)
	h.clock.Advance(500 * ms)
	require.Contains(t, h.taskbar.entries, id)

	h.taskbar.entries[id].activate()
	h.clock.Advance(500 * ms)
	assert.Equal(t, StateOpen, h.state(products))
}

func TestCloseReopenRoundTrip(t *testing.T) {
	_, products, about, _ := storefront()
	h := newHarness(products, about)
	id := h.id(about)

	h.mgr.Close(about)
	assert.Equal(t, StateClosing, h.state(about))
	assert.True(t, h.start.classes[ClassStartHighlight])

	h.clock.Advance(600 * ms)
	assert.Equal(t, StateClosed, h.state(about))
	assert.True(t, about.HasClass(ClassClosed))
	assert.Empty(t, h.taskbar.entries, "closed windows are not shown in the taskbar")
	_, inClosed := h.mgr.closed.get(id)
	assert.True(t, inClosed)
	assertExclusive(t, h.mgr)

	h.mgr.Reopen(id, false)
	assert.Equal(t, StateReopening, h.state(about))
	assert.True(t, about.HasClass(ClassOpening))
	assert.False(t, about.HasClass(ClassClosed))

	h.clock.Advance(600 * ms)
	assert.Equal(t, StateOpen, h.state(about))
	assert.False(t, about.HasClass(ClassOpening))
	_, inClosed = h.mgr.closed.get(id)
	assert.False(t, inClosed)
	assertExclusive(t, h.mgr)
}

func TestReopenCollectionVariant(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)
	id := h.id(products)

	h.mgr.Close(products)
	h.clock.Advance(600 * ms)

	h.mgr.Reopen(id, true)
	assert.True(t, products.HasClass(ClassCollection))
	assert.False(t, products.HasClass(ClassOpening))

	h.clock.Advance(600 * ms)
	assert.Equal(t, StateReopening, h.state(products))

	h.clock.Advance(200 * ms)
	assert.Equal(t, StateOpen, h.state(products))
	assert.False(t, products.HasClass(ClassCollection))
}

func TestIDStableAcrossCycles(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)
	first := h.id(products)

	for i := 0; i < 3; i++ {
		h.mgr.Minimize(products)
		h.clock.Advance(500 * ms)
		require.Equal(t, []string{first}, h.mgr.States().Minimized)
		h.mgr.Restore(first)
		h.clock.Advance(500 * ms)

		h.mgr.Close(products)
		h.clock.Advance(600 * ms)
		require.Equal(t, []string{first}, h.mgr.States().Closed)
		h.mgr.Reopen(first, false)
		h.clock.Advance(600 * ms)
	}
	assert.Equal(t, first, h.id(products))
	assert.Len(t, h.mgr.Windows(), 1)
}

func TestRestoreTwiceIsNoop(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)
	id := h.id(products)

	h.mgr.Minimize(products)
	h.clock.Advance(500 * ms)

	h.mgr.Restore(id)
	assert.NotPanics(t, func() { h.mgr.Restore(id) })
	assert.Equal(t, 1, h.clock.Pending())

	h.clock.Advance(500 * ms)
	assert.Equal(t, StateOpen, h.state(products))
	assert.Empty(t, h.mgr.States().Minimized)
	assert.Zero(t, h.clock.Pending())
}

func TestUnknownIDsAreIgnored(t *testing.T) {
	h := newHarness()
	assert.NotPanics(t, func() {
		h.mgr.Restore("window-nope")
		h.mgr.Reopen("window-nope", true)
	})
	assert.False(t, h.mgr.Activate("window-nope"))
	assert.Zero(t, h.clock.Pending())
}

func TestNilPanelIsIgnored(t *testing.T) {
	h := newHarness()
	assert.NotPanics(t, func() {
		h.mgr.Minimize(nil)
		h.mgr.Close(nil)
		h.mgr.Maximize(nil)
	})
	assert.Empty(t, h.mgr.Windows())
}

func TestRestoreAllOrdering(t *testing.T) {
	clock := schedule.NewVirtual()
	c1 := newPanel(clock, "products", "Catalog", "🛒")
	c2 := newPanel(clock, "about", "About", "ℹ️")
	m1 := newPanel(clock, "contact", "Contact", "✉️")
	h := newHarness(c1, c2, m1)

	h.mgr.Close(c1)
	h.mgr.Close(c2)
	h.mgr.Minimize(m1)
	clock.Flush()

	require.Equal(t, []string{h.id(c1), h.id(c2)}, h.mgr.States().Closed)
	require.Equal(t, []string{h.id(m1)}, h.mgr.States().Minimized)

	start := clock.Now()
	h.mgr.RestoreAll()
	clock.Flush()

	at1, ok := c1.firstOn(ClassCollection)
	require.True(t, ok)
	at2, ok := c2.firstOn(ClassCollection)
	require.True(t, ok)
	at3, ok := m1.firstOn(ClassRestoring)
	require.True(t, ok)

	assert.Equal(t, start, at1)
	assert.Equal(t, start+200*ms, at2)
	assert.Equal(t, start+400*ms, at3)

	for _, p := range []*fakePanel{c1, c2, m1} {
		assert.Equal(t, StateOpen, h.state(p))
	}
	assert.Empty(t, h.mgr.States().Closed)
	assert.Empty(t, h.mgr.States().Minimized)
}

func TestRestoreAllSkipsWindowsRestoredMeanwhile(t *testing.T) {
	clock := schedule.NewVirtual()
	a := newPanel(clock, "s", "A", "")
	b := newPanel(clock, "s", "B", "")
	h := newHarness(a, b)

	h.mgr.Minimize(a)
	h.mgr.Minimize(b)
	clock.Flush()

	h.mgr.RestoreAll()
	// b is restored by hand before its slot comes up.
	h.mgr.Restore(h.id(b))
	clock.Flush()

	assert.Equal(t, StateOpen, h.state(a))
	assert.Equal(t, StateOpen, h.state(b))
	restoring := 0
	for _, c := range b.changes {
		if c.class == ClassRestoring && c.on {
			restoring++
		}
	}
	assert.Equal(t, 1, restoring)
}

func TestCartCloseDelegates(t *testing.T) {
	clock, products, _, _ := storefront()
	cart := newPanel(clock, "", "Shopping Cart", "🛒")
	cart.containers = []string{"cart-modal"}
	h := newHarness(products, cart)

	h.mgr.Close(cart)
	clock.Flush()

	assert.Equal(t, 1, h.cart.hidden)
	assert.Empty(t, h.mgr.States().Closed)
	assert.Empty(t, h.taskbar.entries)
	assert.False(t, cart.HasClass(ClassClosing))
	assert.False(t, cart.HasClass(ClassClosed))
	assert.False(t, h.start.classes[ClassStartHighlight])
	assert.Equal(t, "Start", h.start.tooltip)
}

func TestStartButtonCount(t *testing.T) {
	_, products, about, _ := storefront()
	h := newHarness(products, about)

	h.mgr.Close(products)
	h.mgr.Minimize(about)
	h.clock.Advance(600 * ms)

	assert.Equal(t, 2, h.mgr.RestorableCount())
	assert.Equal(t, "Click to restore 2 window(s)", h.start.tooltip)
	assert.True(t, h.start.classes[ClassStartPulse])

	h.mgr.RestoreAll()
	assert.False(t, h.start.classes[ClassStartPulse])
	h.clock.Flush()

	assert.Equal(t, 0, h.mgr.RestorableCount())
	assert.Equal(t, "Start", h.start.tooltip)
	assert.False(t, h.start.classes[ClassStartPulse])
	assert.False(t, h.start.classes[ClassStartHighlight])
}

func TestHighlightThenPulse(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)

	h.mgr.Close(products)
	assert.True(t, h.start.classes[ClassStartHighlight])

	h.clock.Advance(1500 * ms)
	assert.False(t, h.start.classes[ClassStartHighlight])
	assert.True(t, h.start.classes[ClassStartPulse])
}

func TestMinimizeDuringTransitionIsNoop(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)

	h.mgr.Minimize(products)
	h.clock.Advance(200 * ms)
	h.mgr.Minimize(products)
	h.mgr.Close(products)
	h.mgr.Maximize(products)
	h.clock.Flush()

	assert.Equal(t, StateMinimized, h.state(products))
	assert.Equal(t, 1, h.taskbar.adds)
	assert.Len(t, h.taskbar.entries, 1)
	assert.Len(t, h.mgr.States().Minimized, 1)
	assert.Empty(t, h.mgr.States().Closed)
	assert.False(t, products.HasClass(ClassMaximized))
}

func TestOperationsOnHiddenWindowsAreNoops(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)

	h.mgr.Close(products)
	h.clock.Flush()
	h.mgr.Minimize(products)
	h.clock.Flush()

	assert.Equal(t, StateClosed, h.state(products))
	assert.Empty(t, h.mgr.States().Minimized)
	assertExclusive(t, h.mgr)
}

func TestMaximizeToggle(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)

	h.mgr.Maximize(products)
	assert.True(t, products.HasClass(ClassMaximized))
	assert.Zero(t, h.clock.Pending())
	w, _ := h.mgr.WindowOf(products)
	assert.True(t, w.Maximized)

	h.mgr.Maximize(products)
	assert.False(t, products.HasClass(ClassMaximized))
	assert.Equal(t, StateOpen, h.state(products))
	assert.Zero(t, h.mgr.RestorableCount())
}

func TestPlaceholderMetadata(t *testing.T) {
	clock := schedule.NewVirtual()
	bare := newPanel(clock, "", "", "")
	bare.noTitle = true
	h := newHarness(bare)

	assert.Equal(t, "window-unknown-window", h.id(bare))

	h.mgr.Minimize(bare)
	clock.Flush()

	entry := h.taskbar.entries[h.id(bare)]
	assert.Equal(t, "Window", entry.title)
	assert.Equal(t, "📄", entry.icon)

	states := h.mgr.States()
	assert.Empty(t, states.Open)
}

func TestMetadataReadAtActionTime(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)

	products.title = "Products (3 items)"
	h.mgr.Close(products)
	h.clock.Flush()

	w, ok := h.mgr.Window(h.id(products))
	require.True(t, ok)
	assert.Equal(t, "Products (3 items)", w.Title)
	assert.Equal(t, "window-products-products-exe", w.ID)
}

func TestActivateStartWithNothingToRestore(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)

	h.start.onClick()

	require.Len(t, h.prompt.informs, 1)
	assert.Contains(t, h.prompt.informs[0], "All windows are currently open and active.")
	assert.Empty(t, h.prompt.confirms)
	assert.Zero(t, h.clock.Pending())
}

func TestActivateStartConfirmed(t *testing.T) {
	_, products, about, _ := storefront()
	h := newHarness(products, about)
	h.prompt.answer = true

	h.mgr.Close(products)
	h.mgr.Minimize(about)
	h.clock.Flush()

	h.start.onClick()
	require.Len(t, h.prompt.confirms, 1)
	msg := h.prompt.confirms[0]
	assert.Contains(t, msg, "1 closed window(s) available to reopen")
	assert.Contains(t, msg, "1 minimized window(s) available to restore")
	assert.Contains(t, msg, "Would you like to restore all windows?")

	h.clock.Flush()
	assert.Equal(t, StateOpen, h.state(products))
	assert.Equal(t, StateOpen, h.state(about))
}

func TestActivateStartDeclined(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)

	h.mgr.Close(products)
	h.clock.Flush()

	h.start.onClick()
	require.Len(t, h.prompt.confirms, 1)
	assert.NotContains(t, h.prompt.confirms[0], "minimized")
	h.clock.Flush()
	assert.Equal(t, StateClosed, h.state(products))
}

func TestStatesSnapshot(t *testing.T) {
	_, products, about, contact := storefront()
	h := newHarness(products, about, contact)

	h.mgr.Minimize(products)
	h.mgr.Close(about)
	h.clock.Flush()

	s := h.mgr.States()
	assert.Equal(t, []string{h.id(products)}, s.Minimized)
	assert.Equal(t, []string{h.id(about)}, s.Closed)
	assert.Equal(t, []string{"Contact"}, s.Open)
}

func TestControlsAreBound(t *testing.T) {
	_, products, _, _ := storefront()
	h := newHarness(products)

	h.tree.click(RoleMaximize, products)
	assert.True(t, products.HasClass(ClassMaximized))
	h.tree.click(RoleMaximize, products)

	h.tree.click(RoleMinimize, products)
	h.clock.Flush()
	assert.Equal(t, StateMinimized, h.state(products))

	h.mgr.Restore(h.id(products))
	h.clock.Flush()

	h.tree.click(RoleClose, products)
	h.clock.Flush()
	assert.Equal(t, StateClosed, h.state(products))
}

func TestRestorableAndActivate(t *testing.T) {
	_, products, about, contact := storefront()
	h := newHarness(products, about, contact)

	gen := h.mgr.Generation()
	h.mgr.Minimize(products)
	h.mgr.Close(about)
	h.mgr.Close(contact)
	h.clock.Flush()
	assert.Greater(t, h.mgr.Generation(), gen)

	entries := h.mgr.Restorable()
	require.Len(t, entries, 3)
	assert.Equal(t, KindClosed, entries[0].Kind)
	assert.Equal(t, "About Us", entries[0].Title)
	assert.Equal(t, KindClosed, entries[1].Kind)
	assert.Equal(t, KindMinimized, entries[2].Kind)

	assert.True(t, h.mgr.Activate(h.id(about)))
	assert.True(t, h.mgr.Activate(h.id(products)))
	h.clock.Flush()
	assert.Equal(t, StateOpen, h.state(about))
	assert.Equal(t, StateOpen, h.state(products))
	assert.Equal(t, ClassOpening, about.changes[len(about.changes)-2].class)
}

func TestUntrackedPanelIsTrackedLazily(t *testing.T) {
	h := newHarness()
	late := newPanel(h.clock, "footer", "Newsletter", "📰")

	h.mgr.Minimize(late)
	h.clock.Flush()

	assert.Equal(t, "window-footer-newsletter", h.id(late))
	assert.Equal(t, StateMinimized, h.state(late))
}

func TestForgetDropsRegisteredWindow(t *testing.T) {
	_, products, about, contact := storefront()
	h := newHarness(products, about, contact)
	productsID, aboutID := h.id(products), h.id(about)

	h.mgr.Minimize(products)
	h.clock.Flush()
	require.Contains(t, h.taskbar.entries, productsID)
	require.Equal(t, 1, h.mgr.RestorableCount())
	gen := h.mgr.Generation()

	h.mgr.Forget(products)
	assert.Equal(t, 0, h.mgr.RestorableCount())
	assert.Empty(t, h.taskbar.entries)
	assert.Empty(t, h.mgr.States().Minimized)
	assert.Equal(t, "Start", h.start.tooltip)
	assert.False(t, h.start.classes[ClassStartPulse])
	assert.Greater(t, h.mgr.Generation(), gen)
	_, ok := h.mgr.Window(productsID)
	assert.False(t, ok)
	assert.Len(t, h.mgr.Windows(), 2)

	// A close still animating when the panel vanishes never registers.
	h.mgr.Close(about)
	h.mgr.Forget(about)
	h.clock.Flush()
	assert.Empty(t, h.mgr.States().Closed)
	_, ok = h.mgr.Window(aboutID)
	assert.False(t, ok)

	h.mgr.Forget(about)
	h.mgr.RestoreAll()
	h.clock.Flush()
	assert.Equal(t, StateOpen, h.state(contact))
}

func TestStatesEmptyTitleIsUnknown(t *testing.T) {
	clock := schedule.NewVirtual()
	blank := newPanel(clock, "misc", "", "")
	h := newHarness(blank)

	assert.Equal(t, []string{"Unknown Window"}, h.mgr.States().Open)
	assert.Equal(t, "window-misc-window", h.id(blank))
}
