package vision

// damageCheckPrompt asks for a strict damage-only verdict on one photo.
// Schema: {"has_damage": bool, "reason": string}.
const damageCheckPrompt = "You are a property inspector. Analyze this image for PROPERTY DAMAGE.\n" +
	"Look for: Stains on carpet/walls, holes, cracks, broken glass, water damage, mold, or broken fixtures.\n" +
	"Ignore: Clutter, messy beds, or old furniture styles. Only flag actual damage or filth.\n" +
	"Return a JSON object with this exact format:\n" +
	"{\"has_damage\": true, \"reason\": \"brief description of damage\"}\n" +
	"If no damage, set has_damage to false."

// reviewPhotoPrompt asks for a guest-readiness verdict on one photo.
// Schema: {"has_issues": bool, "description": string, "severity": enum}.
const reviewPhotoPrompt = "You are a property manager. Would a guest be unhappy seeing this?\n" +
	"Flag anything that looks bad: damage, mess, poorly made beds, dirty areas, broken items, stains, etc.\n\n" +
	"Return JSON: {\"has_issues\": true/false, \"description\": \"what's wrong\", " +
	"\"severity\": \"none/minor/moderate/severe\"}"

// reviewGroupPrompt extends reviewPhotoPrompt for photos of the same area
// across different dates, adding a changes_over_time field.
const reviewGroupPrompt = "You are a property manager. These photos show the same area across different dates.\n" +
	"Flag anything a guest wouldn't want to see: damage, mess, poorly made beds, dirty areas, broken items, stains, etc.\n\n" +
	"Return JSON: {\"has_issues\": true/false, \"description\": \"what's wrong\", " +
	"\"severity\": \"none/minor/moderate/severe\", \"changes_over_time\": \"any changes or 'none'\"}"
