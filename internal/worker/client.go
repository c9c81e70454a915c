package worker

import (
	"fmt"
	"net"
	"time"

	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/log"
	"github.com/frakt-go/frakt/internal/protocol"
)

// RetryDelay is how long the worker waits before retrying a transient
// connect or read failure (spec §4.5/§7).
const RetryDelay = 5 * time.Second

// maximalWorkLoad is the fixed value advertised in every FragmentRequest;
// the dispatcher never reads it (see SPEC_FULL's notes on this field).
const maximalWorkLoad = 10

// Config holds the worker loop's connection and behavior parameters.
type Config struct {
	Addr      string
	Name      string
	SaveTiles bool
}

// Run connects to the dispatcher and loops request -> compute -> result
// forever, or until stop is closed. Each round uses a fresh connection: one
// to request the first task, then one per result, each reply carrying the
// next task to compute (spec §4.5).
func Run(cfg Config, stop <-chan struct{}) error {
	logger := log.GetLogger()

	task, idBytes, err := requestTask(cfg)
	for {
		if err != nil {
			logger.WithError(err).Warnf("worker: request failed, retrying in %s", RetryDelay)
			if !sleepOrStop(RetryDelay, stop) {
				return nil
			}
			task, idBytes, err = requestTask(cfg)
			continue
		}

		select {
		case <-stop:
			return nil
		default:
		}

		intensities := Compute(task)

		if cfg.SaveTiles {
			if path, saveErr := saveTileImage(task.Fractal.Kind, task, intensities); saveErr != nil {
				logger.WithError(saveErr).Warn("worker: saving tile image failed")
			} else {
				logger.Debugf("worker: saved tile image to %s", path)
			}
		}

		var next protocol.FragmentTask
		var nextID []byte
		next, nextID, err = sendResult(cfg, task, idBytes, intensities)
		if err != nil {
			logger.WithError(err).Warnf("worker: sending result failed, retrying in %s", RetryDelay)
			if !sleepOrStop(RetryDelay, stop) {
				return nil
			}
			task, idBytes, err = requestTask(cfg)
			continue
		}
		task, idBytes = next, nextID
	}
}

func sleepOrStop(d time.Duration, stop <-chan struct{}) bool {
	select {
	case <-time.After(d):
		return true
	case <-stop:
		return false
	}
}

func requestTask(cfg Config) (protocol.FragmentTask, []byte, error) {
	conn, err := net.Dial("tcp", cfg.Addr)
	if err != nil {
		return protocol.FragmentTask{}, nil, fmt.Errorf("worker: connecting to %s: %w", cfg.Addr, err)
	}
	defer conn.Close()

	req := protocol.NewRequestFragment(protocol.FragmentRequest{
		WorkerName:      cfg.Name,
		MaximalWorkLoad: maximalWorkLoad,
	})
	if err := protocol.Send(conn, req, nil); err != nil {
		return protocol.FragmentTask{}, nil, fmt.Errorf("worker: sending request: %w", err)
	}

	fragment, idBytes, err := protocol.Read(conn)
	if err != nil {
		return protocol.FragmentTask{}, nil, fmt.Errorf("worker: reading task: %w", err)
	}
	if fragment.Task == nil {
		return protocol.FragmentTask{}, nil, fmt.Errorf("worker: expected FragmentTask, got %s", fragment.Variant())
	}
	return *fragment.Task, idBytes, nil
}

// sendResult sends the completed tile on a fresh connection and reads back
// the dispatcher's next FragmentTask from the same connection, per spec
// §4.5's "read next FragmentTask + id_bytes" step.
func sendResult(cfg Config, task protocol.FragmentTask, idBytes []byte, intensities []fractal.Intensity) (protocol.FragmentTask, []byte, error) {
	conn, err := net.Dial("tcp", cfg.Addr)
	if err != nil {
		return protocol.FragmentTask{}, nil, fmt.Errorf("worker: connecting to %s: %w", cfg.Addr, err)
	}
	defer conn.Close()

	pixelCount := uint32(len(intensities))
	payload := make([]byte, 0, len(idBytes)+int(pixelCount)*8)
	payload = append(payload, idBytes...)
	payload = protocol.EncodePixels(payload, intensities)

	result := protocol.NewResultFragment(protocol.FragmentResult{
		ID:         protocol.U8Data{Offset: 0, Count: uint32(len(idBytes))},
		Resolution: task.Resolution,
		Range:      task.Range,
		Pixels:     protocol.U8Data{Offset: uint32(len(idBytes)), Count: pixelCount},
	})
	if err := protocol.Send(conn, result, payload); err != nil {
		return protocol.FragmentTask{}, nil, fmt.Errorf("worker: sending result: %w", err)
	}

	fragment, nextID, err := protocol.Read(conn)
	if err != nil {
		return protocol.FragmentTask{}, nil, fmt.Errorf("worker: reading next task: %w", err)
	}
	if fragment.Task == nil {
		return protocol.FragmentTask{}, nil, fmt.Errorf("worker: expected FragmentTask, got %s", fragment.Variant())
	}
	return *fragment.Task, nextID, nil
}
