package proto

import (
	"sort"
)

var (
	emoteAnimations map[uint32]uint8
	emoteNames      map[uint32]string
	emoteDuplicates []uint32
)

func init() {
	emoteAnimations = make(map[uint32]uint8, len(emoteList))
	emoteNames = make(map[uint32]string, len(emoteList))
	seen := map[uint32]bool{}
	for _, e := range emoteList {
		if _, ok := emoteAnimations[e.opcode]; ok && !seen[e.opcode] {
			emoteDuplicates = append(emoteDuplicates, e.opcode)
			seen[e.opcode] = true
		}
		emoteAnimations[e.opcode] = e.animation
		emoteNames[e.opcode] = e.name
	}
	sort.Slice(emoteDuplicates, func(i, j int) bool {
		return emoteDuplicates[i] < emoteDuplicates[j]
	})
}

// LookupEmote returns the animation index played for the client emote opcode
func LookupEmote(opcode uint32) (uint8, bool) {
	animation, ok := emoteAnimations[opcode]
	if !ok || animation == 0 {
		return 0, false
	}
	return animation, true
}

// EmoteName returns the chat command of the emote opcode, without the slash
func EmoteName(opcode uint32) string {
	return emoteNames[opcode]
}

// DuplicateEmoteKeys returns the opcodes listed more than once in the emote table, in ascending order.
// The client maps these opcodes inconsistently and the last listed animation is used.
func DuplicateEmoteKeys() []uint32 {
	keys := make([]uint32, len(emoteDuplicates))
	copy(keys, emoteDuplicates)
	return keys
}
