package system

import "log"

// ConsoleSystem executes command lines typed on another goroutine.
type ConsoleSystem struct {
	lines  <-chan string
	logger *log.Logger
}

func NewConsoleSystem(lines <-chan string, logger *log.Logger) *ConsoleSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ConsoleSystem{lines: lines, logger: logger}
}

func (s *ConsoleSystem) Update(w *World) {
	if w == nil || w.Console == nil {
		return
	}
	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				s.lines = nil
				return
			}
			if err := w.Console.Exec(line); err != nil {
				s.logger.Printf("console: %v", err)
			}
		default:
			return
		}
	}
}
