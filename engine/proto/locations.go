package proto

import "fmt"

// WorldLocation selects the world file the client loads
type WorldLocation uint32

const (
	LOC_TUTORIAL WorldLocation = iota
	LOC_SLUMS
	LOC_DOWNTOWN
	LOC_INTERNATIONAL
	LOC_ARCHIVE01
	LOC_ARCHIVE02
	LOC_ASHENCOURT
	LOC_DATAMINE
	LOC_SAKURA
	LOC_SATI
	LOC_WIDOWSMOOR
	LOC_YUKI
	LOC_LARGE01
	LOC_LARGE02
	LOC_MEDIUM01
	LOC_MEDIUM02
	LOC_MEDIUM03
	LOC_SMALL03
	LOC_CAVES
)

const worldsDir = "resource/worlds/final_world/"

var worldFiles = map[WorldLocation]string{
	LOC_TUTORIAL:      worldsDir + "tutorial_v2/tutorial_v2.metr",
	LOC_SLUMS:         worldsDir + "slums_barrens_full.metr",
	LOC_DOWNTOWN:      worldsDir + "downtown/dt_world.metr",
	LOC_INTERNATIONAL: worldsDir + "international/it.metr",
	LOC_ARCHIVE01:     worldsDir + "constructs/archive/archive01/archive01.metr",
	LOC_ARCHIVE02:     worldsDir + "constructs/archive/archive02/archive02.metr",
	LOC_ASHENCOURT:    worldsDir + "constructs/archive/archive_ashencourte/archive_ashencourte.metr",
	LOC_DATAMINE:      worldsDir + "constructs/archive/archive_datamine/datamine.metr",
	LOC_SAKURA:        worldsDir + "constructs/archive/archive_sakura/archive_sakura.metr",
	LOC_SATI:          worldsDir + "constructs/archive/archive_sati/sati.metr",
	LOC_WIDOWSMOOR:    worldsDir + "constructs/archive/archive_widowsmoor/archive_widowsmoor.metr",
	LOC_YUKI:          worldsDir + "constructs/archive/archive_yuki/archive_yuki.metr",
	LOC_LARGE01:       worldsDir + "constructs/large/large01/large01.metr",
	LOC_LARGE02:       worldsDir + "constructs/large/large02/large02.metr",
	LOC_MEDIUM01:      worldsDir + "constructs/medium/medium01/medium01.metr",
	LOC_MEDIUM02:      worldsDir + "constructs/medium/medium02/medium02.metr",
	LOC_MEDIUM03:      worldsDir + "constructs/medium/medium03/medium03.metr",
	LOC_SMALL03:       worldsDir + "constructs/small/small03/small03.metr",
	LOC_CAVES:         worldsDir + "zion_caves.metr",
}

// WorldFile returns the world file of the location, empty for unknown locations
func (loc WorldLocation) WorldFile() string {
	return worldFiles[loc]
}

func (loc WorldLocation) String() string {
	return fmt.Sprintf("WorldLocation(%d)", uint32(loc))
}
