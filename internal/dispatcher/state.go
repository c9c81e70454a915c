// Package dispatcher implements the single dispatcher actor that owns all
// mutable render state (pending tiles, in-flight tasks, completed-tile
// intensities, the composed image) plus the TCP server that feeds it,
// grounded on server/src/server_services/server.rs of the original
// implementation this system was distilled from, generalized to the full
// actor-model state machine described by the fractal renderer's wire
// contract.
package dispatcher

import (
	"time"

	"github.com/google/uuid"

	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/log"
	"github.com/frakt-go/frakt/internal/protocol"
	"github.com/frakt-go/frakt/internal/tiles"
)

// TaskID is the dispatcher-assigned opaque 16-byte task identifier.
type TaskID [16]byte

// RegenerationDelay is how long the actor sleeps before reseeding an empty
// task queue — either because the previous image just completed or because
// of a race condition; see spec §4.4/§9.
const RegenerationDelay = 5 * time.Second

// request is one (reply channel, fragment, payload) tuple forwarded by a
// per-connection handler to the actor's single event loop.
type request struct {
	fragment protocol.Fragment
	payload  []byte
	reply    chan<- response
}

// response is the actor's answer to a request: the fragment to send back and
// its binary payload (the new task-id for FragmentTask replies).
type response struct {
	fragment protocol.Fragment
	payload  []byte
}

// State is the dispatcher actor. All fields below are owned exclusively by
// the goroutine running Run; nothing else may touch them.
type State struct {
	fractalName fractal.Kind
	events      chan request
	regenDelay  time.Duration

	params      []protocol.FragmentTask
	tasksState  map[TaskID]protocol.FragmentTask
	calculState map[TaskID][]fractal.Intensity
	image       *buffer
}

// New constructs a dispatcher actor for the given fractal. Call Run to start
// its event loop; send events via Submit.
func New(fractalName fractal.Kind) *State {
	return &State{
		fractalName: fractalName,
		events:      make(chan request),
		regenDelay:  RegenerationDelay,
		tasksState:  make(map[TaskID]protocol.FragmentTask),
		calculState: make(map[TaskID][]fractal.Intensity),
		image:       newBuffer(),
	}
}

// Submit hands one (fragment, payload) pair to the actor and blocks until it
// replies. It is safe to call concurrently from many goroutines; the actor
// itself processes events strictly sequentially.
func (s *State) Submit(fragment protocol.Fragment, payload []byte) (protocol.Fragment, []byte) {
	reply := make(chan response, 1)
	s.events <- request{fragment: fragment, payload: payload, reply: reply}
	r := <-reply
	return r.fragment, r.payload
}

// Run is the actor's single event loop. It must run on exactly one goroutine
// for the lifetime of the dispatcher.
func (s *State) Run() {
	logger := log.GetLogger()
	for ev := range s.events {
		switch {
		case ev.fragment.Request != nil:
			task, id := s.issueTask()
			ev.reply <- response{fragment: protocol.NewTaskFragment(task), payload: id[:]}

		case ev.fragment.Result != nil:
			s.handleResult(*ev.fragment.Result, ev.payload)
			task, id := s.issueTask()
			ev.reply <- response{fragment: protocol.NewTaskFragment(task), payload: id[:]}

		default:
			logger.Warnf("dispatcher: dropping unexpected fragment variant %q", ev.fragment.Variant())
			ev.reply <- response{}
		}
	}
}

// issueTask pops the next pending tile, regenerating the queue first if it
// is empty, assigns a fresh random id, and records the task as in-flight.
func (s *State) issueTask() (protocol.FragmentTask, TaskID) {
	if len(s.params) == 0 {
		time.Sleep(s.regenDelay)
		s.regenerate()
	}

	task := s.params[len(s.params)-1]
	s.params = s.params[:len(s.params)-1]

	id := TaskID(uuid.New())
	s.tasksState[id] = task
	return task, id
}

// regenerate reseeds params with a fresh set of 16 tiles for the current
// fractal and clears the in-flight and completed maps.
func (s *State) regenerate() {
	logger := log.GetLogger()
	newTasks, err := tiles.Generate(s.fractalName)
	if err != nil {
		logger.WithError(err).Errorf("dispatcher: regenerating tiles for %q", s.fractalName)
		return
	}
	s.params = newTasks
	s.tasksState = make(map[TaskID]protocol.FragmentTask)
	s.calculState = make(map[TaskID][]fractal.Intensity)
}

// handleResult decodes a worker's FragmentResult, blits it into the image
// buffer, and persists + resets the image once all 16 tiles have landed.
func (s *State) handleResult(result protocol.FragmentResult, payload []byte) {
	logger := log.GetLogger()

	idCount := int(result.ID.Count)
	if idCount > len(payload) {
		logger.Errorf("dispatcher: result payload shorter than id.count (%d > %d); dropping", idCount, len(payload))
		return
	}
	idBytes, pixelBytes := payload[:idCount], payload[idCount:]

	var id TaskID
	copy(id[:], idBytes)

	task, inFlight := s.tasksState[id]
	if !inFlight {
		logger.Warnf("dispatcher: result for unknown or already-completed task-id; dropping")
		return
	}

	intensities, err := protocol.DecodePixels(pixelBytes)
	if err != nil {
		logger.WithError(err).Error("dispatcher: decoding pixel stream; dropping result, task remains stranded")
		return
	}

	delete(s.tasksState, id)
	s.calculState[id] = intensities
	s.image.blit(task.Range, task.Resolution, intensities)

	if len(s.calculState) == tiles.Count {
		path, err := s.image.save(string(s.fractalName))
		if err != nil {
			logger.WithError(err).Error("dispatcher: saving completed image")
		} else {
			logger.Infof("dispatcher: saved completed image to %s", path)
		}
		s.image.reset()
		s.tasksState = make(map[TaskID]protocol.FragmentTask)
		s.calculState = make(map[TaskID][]fractal.Intensity)
	}
}
