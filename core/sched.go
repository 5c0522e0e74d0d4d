// Package core implements a software timer multiplexer: any number of
// logical timers share one physical hardware countdown resource. The
// scheduler keeps every pending timer on an intrusive list sorted by
// expiry and keeps the hardware armed for the nearest one; the interrupt
// handler drains all timers due at that instant with a single re-arm.
//
// All mutating operations and the dispatch run under the interrupt guard
// (see interrupt_go.go / interrupt_tinygo.go), so application code and the
// timer ISR never interleave mid-update. Nothing in this package
// allocates; timer storage is supplied by the caller.
package core

import "errors"

// Mode selects single-shot or repeating expiry behavior.
type Mode uint32

const (
	// SingleShot timers expire once and return to the stopped state.
	SingleShot Mode = iota
	// Repeating timers re-arm themselves every period ticks.
	Repeating
)

// Callback is invoked from the timer interrupt when a timer expires.
// It runs after the schedule has been brought back to a consistent
// state, so it may call Start/Stop/Update on the same scheduler.
type Callback func(arg any)

var (
	// ErrTimerNotExist reports a nil timer handle.
	ErrTimerNotExist = errors.New("core: timer does not exist")

	// ErrHardwareNotRegistered reports a Start before Attach.
	ErrHardwareNotRegistered = errors.New("core: physical timer hardware not registered")
)

// rebaseBit marks the midpoint of the 32-bit timeline. Once a projected
// expiry crosses it the whole schedule is shifted back toward the current
// instant, restoring headroom before unsigned arithmetic could wrap.
const rebaseBit = 0x80000000

// Timer is one logical timer. The caller owns the storage; the zero
// value is a stopped, unconfigured timer. A Timer must not be copied
// while scheduled.
type Timer struct {
	// Expiry instant in the shared timeline while scheduled.
	time uint32

	// Delay before expiry; also the re-arm interval for Repeating.
	period uint32

	mode     Mode
	callback Callback
	arg      any

	next *Timer
	prev *Timer
}

// Period returns the configured period in ticks.
func (t *Timer) Period() uint32 { return t.period }

// Mode returns the configured expiry mode.
func (t *Timer) Mode() Mode { return t.mode }

// Scheduler multiplexes logical timers onto one Hardware instance.
// Independent schedulers may coexist, each with its own hardware.
type Scheduler struct {
	head *Timer
	hw   Hardware
}

// NewScheduler returns an empty scheduler with no hardware attached.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Attach registers the physical timer hardware. Must happen before the
// first Start.
func (s *Scheduler) Attach(hw Hardware) {
	state := disableInterrupts()
	s.hw = hw
	restoreInterrupts(state)
}

// Create initializes caller-supplied timer storage in the stopped state
// and returns it as the handle for the other operations. The schedule
// and the hardware are not touched. A nil t yields a nil handle, which
// the other operations reject with ErrTimerNotExist.
func (s *Scheduler) Create(period uint32, mode Mode, callback Callback, arg any, t *Timer) *Timer {
	if t == nil {
		return nil
	}
	state := disableInterrupts()
	*t = Timer{period: period, mode: mode, callback: callback, arg: arg}
	restoreInterrupts(state)
	return t
}

// Update replaces a timer's parameters. A stopped timer is updated in
// place; a running timer is stopped, updated, and restarted so it
// re-enters the schedule at a freshly computed expiry.
func (s *Scheduler) Update(t *Timer, period uint32, mode Mode, callback Callback, arg any) error {
	if t == nil {
		return ErrTimerNotExist
	}
	state := disableInterrupts()
	defer restoreInterrupts(state)

	running := s.scheduled(t)
	if running {
		s.remove(t)
	}
	t.period = period
	t.mode = mode
	t.callback = callback
	t.arg = arg
	if running {
		// Hardware was necessarily attached for the timer to have
		// been running.
		s.schedule(t)
	}
	return nil
}

// Start schedules the timer to expire period ticks from now. A timer
// that is already running is restarted. Fails with
// ErrHardwareNotRegistered before Attach, leaving the schedule
// untouched.
func (s *Scheduler) Start(t *Timer) error {
	if t == nil {
		return ErrTimerNotExist
	}
	if s.hw == nil {
		return ErrHardwareNotRegistered
	}
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.scheduled(t) {
		s.remove(t)
	}
	s.schedule(t)
	return nil
}

// Stop removes the timer from the schedule and returns it to the
// stopped state. Stopping a timer that is not scheduled succeeds and
// changes nothing.
func (s *Scheduler) Stop(t *Timer) error {
	if t == nil {
		return ErrTimerNotExist
	}
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.head == nil || !s.scheduled(t) {
		return nil
	}
	s.remove(t)
	return nil
}

// scheduled reports list membership. Linkage is the authoritative test:
// a rebase can legally drive a scheduled timer's stored time to any
// value, so the time field alone cannot be trusted here.
func (s *Scheduler) scheduled(t *Timer) bool {
	return t == s.head || t.prev != nil
}

// schedule places t into the list and keeps the hardware armed for the
// earliest expiry. t must be unlinked on entry.
func (s *Scheduler) schedule(t *Timer) {
	if s.head == nil {
		s.head = t
		t.time = t.period
		s.hw.Arm(t.period)
		return
	}

	// Express "now + period" in the head's timeline basis: the current
	// instant is head.time minus the ticks still on the countdown.
	s.advance(t, s.head.time-s.hw.Count()+t.period)

	if t.time < s.head.time {
		// New nearest expiry: shorten the pending countdown.
		s.hw.Arm(t.time - (s.head.time - s.hw.Count()))
		t.next = s.head
		s.head.prev = t
		s.head = t
	} else if s.head.next == nil {
		s.head.next = t
		t.prev = s.head
	} else {
		s.insert(s.head.next, t)
	}
}

// remove unlinks a scheduled timer, re-arming or disarming the hardware
// when the head changes.
func (s *Scheduler) remove(t *Timer) {
	if t == s.head {
		if t.next != nil {
			// Ticks until the successor: its expiry minus the
			// current instant.
			s.hw.Arm(t.next.time - (t.time - s.hw.Count()))
			s.head = t.next
			s.head.prev = nil
			t.time = 0
			t.next = nil
		} else {
			t.time = 0
			s.head = nil
			s.hw.Arm(0)
		}
		return
	}
	t.time = 0
	if t.next != nil {
		t.next.prev = t.prev
		t.prev.next = t.next
	} else {
		t.prev.next = nil
	}
	t.prev = nil
	t.next = nil
}

// insert splices t in front of the first node at or after at whose time
// strictly exceeds t's, or appends at the tail. Callers guarantee at is
// non-nil and that any node triggering the splice has a predecessor
// (i.e. t.time >= the list head's time).
func (s *Scheduler) insert(at, t *Timer) {
	for cur := at; cur != nil; cur = cur.next {
		if t.time < cur.time {
			t.next = cur
			t.prev = cur.prev
			cur.prev.next = t
			cur.prev = t
			return
		}
		if cur.next == nil {
			cur.next = t
			t.prev = cur
			t.next = nil
			return
		}
	}
}

// advance moves t forward by delta ticks in the shared timeline. If the
// projected value crosses the timeline midpoint, every scheduled timer
// is shifted back by the current instant (head.time - Count), anchoring
// the timeline at zero again. The applied shift is returned so callers
// holding pre-rebase values can re-express them; it is zero when no
// rebase occurred.
//
// When t is not yet scheduled (the Start path) its delta was computed
// against the pre-rebase head, so the shift is folded into the delta
// here rather than applied by the list walk.
func (s *Scheduler) advance(t *Timer, delta uint32) uint32 {
	var shift uint32
	if (t.time+delta)&rebaseBit != 0 {
		shift = s.head.time - s.hw.Count()
		for cur := s.head; cur != nil; cur = cur.next {
			cur.time -= shift
		}
		if !s.scheduled(t) {
			delta -= shift
		}
	}
	t.time += delta
	return shift
}

// Dispatch is the timer interrupt handler. The platform's ISR calls it
// when the armed countdown elapses. It drains every timer due at the
// serviced instant: single-shot timers are unlinked, repeating timers
// advance by their period and rotate to their new sorted position, and
// the hardware is re-armed once per distinct next instant (or disarmed
// when the schedule empties). Callbacks run after each timer's
// bookkeeping, so they observe a consistent schedule.
func (s *Scheduler) Dispatch() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.head == nil {
		// Spurious interrupt, nothing armed from our side.
		return
	}
	now := s.head.time

	for s.head != nil && s.head.time == now {
		callback := s.head.callback
		arg := s.head.arg

		switch s.head.mode {
		case SingleShot:
			expired := s.head
			expired.time = 0
			s.head = expired.next
			expired.next = nil
			if s.head != nil {
				s.head.prev = nil
			}

		case Repeating:
			now -= s.advance(s.head, s.head.period)
			if s.head.next != nil && s.head.time > s.head.next.time {
				// Rotate the head into sorted position among
				// the remainder.
				moved := s.head
				s.head = moved.next
				s.head.prev = nil
				moved.next = nil
				moved.prev = nil
				s.insert(s.head, moved)
			}

		default:
			// Only reachable through memory corruption or a
			// caller bypassing the API; continuing would
			// misprogram the hardware indefinitely.
			panic("core: corrupted timer mode")
		}

		if s.head != nil {
			if s.head.time != now {
				s.hw.Arm(s.head.time - now)
			}
		} else {
			s.hw.Arm(0)
		}

		if callback != nil {
			callback(arg)
		}
	}
}
