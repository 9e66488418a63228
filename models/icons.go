package models

// Icon variants form a closed set; clients render these keys, nothing else.
const (
	IconWrench   = "wrench"
	IconBolt     = "bolt"
	IconBroom    = "broom"
	IconPaint    = "paint"
	IconHammer   = "hammer"
	IconTruck    = "truck"
	IconLeaf     = "leaf"
	IconFallback = "tools"
)

// categoryIcons maps well-known category names to their icon variant.
var categoryIcons = map[string]string{
	"Plumber":     IconWrench,
	"Electrician": IconBolt,
	"Cleaner":     IconBroom,
	"Painter":     IconPaint,
	"Carpenter":   IconHammer,
	"Mover":       IconTruck,
	"Gardener":    IconLeaf,
}

// IconForCategory resolves a category name to an icon variant, falling back
// to the generic variant for names outside the known set.
func IconForCategory(name string) string {
	if icon, ok := categoryIcons[name]; ok {
		return icon
	}
	return IconFallback
}
