package parameter

// Grid Resolution
const (
	// CollisionTilesPerMapTile is sub-tile resolution of the pathfinding grid
	CollisionTilesPerMapTile = 2

	// BuildingCollisionInset is tiles trimmed from each side of a building's blocking footprint
	// Buildings of size 1 (walls) block their full tile
	BuildingCollisionInset = 0.5

	// DropZoneBuffer is tiles around each building footprint where units may not land
	DropZoneBuffer = 1
)

// Pathfinding Costs
const (
	// PathCostCardinal is the edge weight between orthogonal sub-tiles
	PathCostCardinal = 10

	// PathCostDiagonal is the edge weight between diagonal sub-tiles (≈10√2)
	PathCostDiagonal = 14

	// PathCostWall is the extra weight for entering a wall-blocked sub-tile
	// Roughly 12 tiles of detour before a unit prefers breaking through
	PathCostWall = 240
)
