package console

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"

	"github.com/milk9111/dynamicmusic/cue"
)

var (
	ErrUnknownCommand = errors.New("console: unknown command")
	ErrUsage          = errors.New("console: usage")
)

// Command is one operator command.
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   func(args []string) error
}

// Console executes operator commands against a cue builder. It must be used
// from the update thread.
type Console struct {
	cues     *cue.Builder
	logger   *log.Logger
	commands map[string]Command
}

func New(cues *cue.Builder, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.Default()
	}
	c := &Console{
		cues:     cues,
		logger:   logger,
		commands: make(map[string]Command),
	}
	c.Register(Command{
		Name:  "playdynamic",
		Usage: "playdynamic <trackName>",
		Help:  "stop the current track, select trackName and start it",
		Run:   c.playDynamic,
	})
	c.Register(Command{
		Name:  "stopdynamic",
		Usage: "stopdynamic",
		Help:  "stop the current track",
		Run:   c.stopDynamic,
	})
	c.Register(Command{
		Name:  "skipdynamic",
		Usage: "skipdynamic",
		Help:  "move to the next sequence at the next loop boundary",
		Run:   c.skipDynamic,
	})
	c.Register(Command{
		Name:  "setmood",
		Usage: "setmood <0|1|2>",
		Help:  "set the mood: 0 neutral, 1 danger, 2 death",
		Run:   c.setMood,
	})
	c.Register(Command{
		Name:  "listdynamic",
		Usage: "listdynamic",
		Help:  "list registered tracks, * marks the current one",
		Run:   c.listDynamic,
	})
	c.Register(Command{
		Name:  "help",
		Usage: "help [command]",
		Help:  "describe one command or list them all",
		Run:   c.help,
	})
	return c
}

// Register adds cmd, replacing any command with the same name.
func (c *Console) Register(cmd Command) {
	c.commands[strings.ToLower(cmd.Name)] = cmd
}

// Commands lists the available commands by name.
func (c *Console) Commands() []Command {
	out := make([]Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		out = append(out, cmd)
	}
	slices.SortFunc(out, func(a, b Command) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Exec runs one command line such as "playdynamic tf_music_deathmatch".
// Blank lines and "//" comments are ignored.
func (c *Console) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "//") {
		return nil
	}
	fields := strings.Fields(line)
	cmd, ok := c.commands[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return cmd.Run(fields[1:])
}

func (c *Console) playDynamic(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: playdynamic <trackName>", ErrUsage)
	}
	c.cues.StopCue()
	if err := c.cues.SelectTrack(args[0]); err != nil {
		return err
	}
	c.cues.StartCue()
	return nil
}

func (c *Console) stopDynamic([]string) error {
	c.cues.StopCue()
	return nil
}

func (c *Console) skipDynamic([]string) error {
	c.cues.SetShouldSkip(true)
	return nil
}

func (c *Console) setMood(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: setmood <0|1|2>", ErrUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: setmood <0|1|2>: %q is not a number", ErrUsage, args[0])
	}
	return c.SetMood(cue.Mood(n))
}

// SetMood validates m and the current track before changing the mood.
func (c *Console) SetMood(m cue.Mood) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", cue.ErrUnknownMood, int(m))
	}
	if c.cues.CurrentTrack() == nil {
		return cue.ErrNoCurrentTrack
	}
	c.cues.SetMood(m)
	return nil
}

func (c *Console) listDynamic([]string) error {
	current := c.cues.CurrentTrack()
	for _, name := range c.cues.TrackNames() {
		mark := " "
		if current != nil && current.Name() == name {
			mark = "*"
		}
		t := c.cues.Track(name)
		c.logger.Printf("%s %s (%d sequences)", mark, name, t.SeqCount())
	}
	return nil
}

func (c *Console) help(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: help [command]", ErrUsage)
	}
	if len(args) == 1 {
		cmd, ok := c.commands[strings.ToLower(args[0])]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
		}
		c.logger.Printf("%s: %s", cmd.Usage, cmd.Help)
		return nil
	}
	for _, cmd := range c.Commands() {
		c.logger.Printf("%-24s %s", cmd.Usage, cmd.Help)
	}
	return nil
}
