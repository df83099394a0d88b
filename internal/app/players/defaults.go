package players

// New-character defaults. Hitpoints starts at level 10 so fresh accounts
// are not one-shot; everything else starts at 1.
const (
	baselineSkillID = 4 // hitpoints
	baselineLevel   = 10
	baselineXP      = 1154

	spawnX     = 3222
	spawnY     = 3218
	spawnPlane = 0
)

type starterItem struct {
	Slot     int32
	ItemID   int32
	Quantity int32
}

var starterInventory = []starterItem{
	{Slot: 0, ItemID: 1351, Quantity: 1}, // bronze axe
	{Slot: 1, ItemID: 590, Quantity: 1},  // tinderbox
	{Slot: 2, ItemID: 303, Quantity: 1},  // small fishing net
	{Slot: 3, ItemID: 315, Quantity: 1},  // cooked shrimp
	{Slot: 4, ItemID: 1265, Quantity: 1}, // bronze pickaxe
	{Slot: 5, ItemID: 1205, Quantity: 1}, // bronze dagger
	{Slot: 6, ItemID: 1277, Quantity: 1}, // bronze sword
	{Slot: 7, ItemID: 1171, Quantity: 1}, // wooden shield
	{Slot: 8, ItemID: 841, Quantity: 1},  // shortbow
	{Slot: 9, ItemID: 882, Quantity: 25}, // bronze arrows
	{Slot: 10, ItemID: 1931, Quantity: 1}, // empty pot
	{Slot: 11, ItemID: 1925, Quantity: 1}, // empty bucket
	{Slot: 12, ItemID: 2309, Quantity: 1}, // bread
	{Slot: 13, ItemID: 556, Quantity: 25}, // air runes
	{Slot: 14, ItemID: 558, Quantity: 15}, // mind runes
}
