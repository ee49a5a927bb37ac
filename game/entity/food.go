package entity

import "gridsnake/game/types"

type Food struct {
	ID  ID
	Pos types.Position
}
