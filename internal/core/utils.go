package core

import (
	"fmt"
	"os"
	"strings"
)

// ProgressPrint writes msg to stderr unless quiet is true.
func ProgressPrint(msg string, quiet bool) {
	if !quiet {
		fmt.Fprintln(os.Stderr, msg)
	}
}

// RiotID identifies a player account as gameName#tagLine.
type RiotID struct {
	GameName string
	TagLine  string
}

func (r RiotID) String() string {
	return r.GameName + "#" + r.TagLine
}

// ParseRiotID parses a "name#tag" string.
func ParseRiotID(s string) (RiotID, error) {
	name, tag, ok := strings.Cut(strings.TrimSpace(s), "#")
	if !ok || name == "" || tag == "" {
		return RiotID{}, fmt.Errorf("invalid Riot ID '%s' (expected name#tag)", s)
	}
	return RiotID{GameName: name, TagLine: tag}, nil
}

// ParseQueue maps a queue name to its match-v5 queue id.
func ParseQueue(s string) (int, error) {
	switch strings.ToLower(s) {
	case "solo", "":
		return QueueRankedSolo, nil
	case "flex":
		return QueueRankedFlex, nil
	}
	return 0, fmt.Errorf("invalid queue type '%s' (expected solo or flex)", s)
}

// QueueName is the inverse of ParseQueue.
func QueueName(queue int) string {
	switch queue {
	case QueueRankedSolo:
		return "solo"
	case QueueRankedFlex:
		return "flex"
	}
	return fmt.Sprintf("queue-%d", queue)
}
