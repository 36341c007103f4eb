package proto

type emoteEntry struct {
	opcode    uint32 // as read little endian from the perform emote command
	animation uint8
	name      string
}

// emoteList is the client emote opcode table. Several opcodes share an animation and
// some opcodes appear more than once, in which case the later entry wins.
var emoteList = []emoteEntry{
	{0x580002E6, 0x01, "beckon"},
	{0x5800019B, 0x02, "bigwave"},
	{0x580002E7, 0x03, "bow"},
	{0x3A00000D, 0x04, "clap"},
	{0x3A000010, 0x05, "crossarms"},
	{0x3A000011, 0x06, "nod"},
	{0x58000D57, 0x07, "agree"},
	{0x58000D59, 0x08, "yes"},
	{0x3A000016, 0x09, "orangutan"},
	{0x04000510, 0x0A, "point"},
	{0x580002D1, 0x0B, "pointback"},
	{0x3A000013, 0x0C, "pointleft"},
	{0x3A000014, 0x0D, "pointright"},
	{0x58000CF5, 0x0E, "pointup"},
	{0x58000CFA, 0x0F, "pointdown"},
	{0x3A00000E, 0x10, "salute"},
	{0x3A000012, 0x11, "shakehead"},
	{0x58000D58, 0x12, "disagree"},
	{0x3E00000D, 0x13, "no"},
	{0x580002E9, 0x14, "stomp"},
	{0x3A00000F, 0x15, "tapfoot"},
	{0x3A00000C, 0x16, "wave"},
	{0x58000CEF, 0x17, "dangerarea"},
	{0x58000E13, 0x18, "comeforward"},
	{0x58000CF0, 0x19, "enemyinsight"},
	{0x58000CF0, 0x1A, "enemy"},
	{0x58000CF2, 0x1B, "disperse"},
	{0x3A000015, 0x1C, "lookaround"},
	{0x58000CF6, 0x1D, "takecover"},
	{0x58000CF7, 0x1E, "cover"},
	{0x58000CF3, 0x1F, "mapcheck"},
	{0x58000CF8, 0x20, "onehandedhandstand"},
	{0x58000CFB, 0x21, "giggle"},
	{0x58000CF4, 0x22, "handstand"},
	{0x58000CFC, 0x23, "hearnoevil"},
	{0x58000CFD, 0x24, "seenoevil"},
	{0x58000CFE, 0x25, "speaknoevil"},
	{0x58000D00, 0x26, "coverears"},
	{0x58000D01, 0x27, "covermouth"},
	{0x58000CFF, 0x28, "covereyes"},
	{0x58000D13, 0x29, "blowkiss"},
	{0x58000D1F, 0x2A, "blush"},
	{0x58000D27, 0x2B, "cheer"},
	{0x58000D65, 0x2C, "crackknuckles"},
	{0x58000D65, 0x2D, "crackknuckles"},
	{0x58000D7A, 0x2E, "cry"},
	{0x58000D7B, 0x2F, "curtsey"},
	{0x58000D7C, 0x30, "formalbow"},
	{0x58000D7D, 0x31, "formalcurtsey"},
	{0x58000D81, 0x32, "bowhead"},
	{0x58000D81, 0x33, "bowhead"},
	{0x58000D7E, 0x34, "insult"},
	{0x580015A9, 0x35, "scream"},
	{0x580015A5, 0x36, "anguish"},
	{0x58000D82, 0x37, "karatepower"},
	{0x58000DB9, 0x38, "karatepower2"},
	{0x58000DBA, 0x39, "karatepower3"},
	{0x58000D83, 0x3A, "karatespeed"},
	{0x58000D84, 0x3B, "karatespeed2"},
	{0x58000D85, 0x3C, "karatespeed3"},
	{0x58000DBB, 0x3D, "karatedefense"},
	{0x58000DBC, 0x3E, "karatedefense2"},
	{0x58000DBD, 0x3F, "karatedefense3"},
	{0x58000D87, 0x40, "kneel"},
	{0x58000D88, 0x41, "takeaknee"},
	{0x58000D89, 0x42, "kungfu"},
	{0x58000D89, 0x43, "kungfu"},
	{0x58000D89, 0x44, "kungfu"},
	{0x58000D89, 0x45, "kungfu"},
	{0x58000D89, 0x46, "kungfu"},
	{0x58000D89, 0x47, "kungfu"},
	{0x58000D89, 0x48, "kungfu"},
	{0x58000D89, 0x49, "kungfu"},
	{0x58000D89, 0x4A, "kungfu"},
	{0x58000DBE, 0x4B, "aikido"},
	{0x58000DBE, 0x4C, "aikido"},
	{0x58000DBE, 0x4D, "aikido"},
	{0x58000DBE, 0x4E, "aikido"},
	{0x58000DBE, 0x4F, "aikido"},
	{0x58000DBE, 0x50, "aikido"},
	{0x58000DBE, 0x51, "aikido"},
	{0x58000DBE, 0x52, "aikido"},
	{0x58000DBE, 0x53, "aikido"},
	{0x58000D92, 0x54, "laugh"},
	{0x58000D7F, 0x55, "rude"},
	{0x58000DA4, 0x56, "loser"},
	{0xB4000001, 0x57, "bigtrouble"},
	{0x58000D94, 0x58, "okay"},
	{0x58000D94, 0x59, "ok"},
	{0x58000D96, 0x5A, "peace"},
	{0x58000D77, 0x5B, "pullhair"},
	{0x58000D97, 0x5C, "rolldice"},
	{0x58000D78, 0x5D, "sarcasticclap"},
	{0x58000D79, 0x5E, "golfclap"},
	{0x58000D98, 0x5F, "scratchhead"},
	{0x58000D99, 0x60, "shrug"},
	{0x58000D9A, 0x62, "stretch"},
	{0x58000CF9, 0x63, "suckitdown"},
	{0x58000D9B, 0x64, "surrender"},
	{0x58000D9C, 0x65, "thumbsup"},
	{0x3A000012, 0x66, "shakehead"},
	{0x58000DA2, 0x67, "shameshame"},
	{0x58000D9D, 0x68, "twothumbsup"},
	{0x58000D9F, 0x69, "puke"},
	{0x58000D9E, 0x6A, "vomit"},
	{0x58000DA0, 0x6B, "whistle"},
	{0x58000DA6, 0x6C, "grovel"},
	{0x580002E1, 0x6D, "yawn"},
	{0x58000DA7, 0x6E, "plead"},
	{0x58000DA5, 0x6F, "shakefist"},
	{0xB400024E, 0x70, "cool"},
	{0x58000DB7, 0x71, "crackneck"},
	{0x58000E15, 0x72, "assemble"},
	{0xB4000288, 0x73, "mockcry"},
	{0xB40002A7, 0x74, "throat"},
	{0xB400029B, 0x75, "powerpose"},
	{0xB40002BF, 0x76, "thumbsdown"},
	{0xB40002CC, 0x77, "twothumbsdown"},
	{0x58000E25, 0x78, "taunt"},
	{0x58000E1F, 0x79, "moveout"},
	{0x58000E1F, 0x7A, "move"},
	{0x58000E1D, 0x7B, "iamready"},
	{0x58000E1B, 0x7C, "rdy"},
	{0x58000E19, 0x7D, "ready"},
	{0x8000000D, 0x7E, "stop"},
	{0x58000E0D, 0x7F, "bigcheer"},
	{0xB40002D8, 0x80, "whoa"},
	{0x580014D5, 0x81, "talkrelieved"},
	{0x58001417, 0x82, "talk1"},
	{0x58001419, 0x83, "talk2"},
	{0x5800141B, 0x84, "talk3"},
	{0x5800141D, 0x85, "talkangry"},
	{0x58001421, 0x86, "talkforceful"},
	{0x5800141F, 0x87, "talkexcited"},
	{0x58001423, 0x88, "talkscared"},
	{0x580014D1, 0x89, "talkchuckle"},
	{0x580014D3, 0x8A, "talkhurt"},
	{0x580014D5, 0x8B, "talkrelieved"},
	{0x580015E3, 0x8C, "talknegative"},
	{0x580015DD, 0x8D, "talkpuzzled"},
	{0x580014D9, 0x8E, "talkwhisperobvious"},
	{0x580015DB, 0x8F, "talkgroup"},
	{0x580015D7, 0x90, "talkflirtatious"},
	{0x580015D9, 0x91, "talkaffirmative"},
	{0x580014E1, 0x92, "overheat"},
	{0x580014DD, 0x93, "thewave"},
	{0x580014DB, 0x94, "snake"},
	{0x580014DF, 0x95, "tsuj"},
	{0x58001427, 0x96, "touchearpiece"},
	{0x580014E1, 0x97, "overheat"},
	{0x58001651, 0x98, "backflop"},
	{0x58001655, 0x99, "backflop1"},
	{0x58001653, 0x9A, "backflop2"},
	{0x58001657, 0x9B, "ballet"},
	{0x58001659, 0x9C, "bang"},
	{0x5800165B, 0x9D, "cutitout"},
	{0x5800165D, 0x9E, "giddyup"},
	{0x5800165F, 0x9F, "horns"},
	{0x58001661, 0xA0, "mimewall"},
	{0x58001663, 0xA1, "mimeelbow"},
	{0x58001667, 0xA2, "mimerope"},
	{0x58001665, 0xA3, "picknose"},
	{0x5800166B, 0xA4, "duh"},
	{0x5800166D, 0xA5, "timeout"},
	{0x5800166F, 0xA6, "whichway"},
	{0xB4000282, 0xA9, "kickdoor"},
	{0xB4000271, 0xAA, "examine"},
	{0xB400028E, 0xAC, "pickup"},
	{0xB40002B3, 0xAD, "takepill"},
	{0xE000000B, 0xAF, "cough"},
	{0xB40002A1, 0xB0, "righton"},
	{0xE000000C, 0xB1, "sleep"},
	{0x580002EA, 0xB2, "tiphat"},
	{0xB40000A1, 0xB3, "confused"},
	{0x58000D00, 0xB4, "coverears"},
	{0xB4000276, 0xB5, "eyedrops"},
	{0xB400028E, 0xB6, "pickup"},
	{0x0400050E, 0xBA, "talkdepressed"},
	{0x0400050D, 0xBB, "throw"},
	{0xB40002C5, 0xBC, "toss"},
	{0x3A00004B, 0xBE, "shakehands"},
	{0x580002E4, 0xC1, "slap"},
	{0x58000DAB, 0xC7, "dogsniff"},
	{0x58000DFD, 0xCA, "hug"},
	{0x58000DCA, 0xCD, "weddingkiss"},
	{0x58000DFF, 0xD0, "holdbothhands"},
	{0x58000DFB, 0xD3, "kissthering"},
	{0x58000DF5, 0xD6, "manhug"},
	{0x58000E05, 0xD9, "pound"},
	{0x58000E03, 0xDC, "weddingring"},
	{0x58000E01, 0xDF, "propose"},
	{0x580014C5, 0xE2, "dap"},
	{0x58000DFB, 0xE5, "kiss"},
	{0x58001605, 0xE8, "weddingcake"},
	{0x58001659, 0xEE, "bangbang"},
}
