package colors

// namedColors is populated once at package init, matching the "mutable
// static table lookup" the source used for this — here it's a plain Go
// map built once, looked up by value thereafter (see spec.md §9).
var namedColors = map[string]Color{
	"transparent": {0, 0, 0, 0},
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"aqua":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"fuchsia":     {255, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"maroon":      {128, 0, 0, 255},
	"olive":       {128, 128, 0, 255},
	"lime":        {0, 255, 0, 255},
	"teal":        {0, 128, 128, 255},
	"navy":        {0, 0, 128, 255},
	"purple":      {128, 0, 128, 255},
	"orange":      {255, 165, 0, 255},
	"pink":        {255, 192, 203, 255},
	"brown":       {165, 42, 42, 255},
	"coral":       {255, 127, 80, 255},
	"crimson":     {220, 20, 60, 255},
	"gold":        {255, 215, 0, 255},
	"indigo":      {75, 0, 130, 255},
	"khaki":       {240, 230, 140, 255},
	"lavender":    {230, 230, 250, 255},
	"salmon":      {250, 128, 114, 255},
	"skyblue":     {135, 206, 235, 255},
	"slategray":   {112, 128, 144, 255},
	"steelblue":   {70, 130, 180, 255},
	"tomato":      {255, 99, 71, 255},
	"turquoise":   {64, 224, 208, 255},
	"violet":      {238, 130, 238, 255},
	"wheat":       {245, 222, 179, 255},
	"dimgray":     {105, 105, 105, 255},
	"darkgray":    {169, 169, 169, 255},
	"darkgrey":    {169, 169, 169, 255},
	"lightgray":   {211, 211, 211, 255},
	"lightgrey":   {211, 211, 211, 255},
	"gainsboro":   {220, 220, 220, 255},
	"whitesmoke":  {245, 245, 245, 255},
	"aliceblue":   {240, 248, 255, 255},
	"azure":       {240, 255, 255, 255},
	"beige":       {245, 245, 220, 255},
	"bisque":      {255, 228, 196, 255},
	"chartreuse":  {127, 255, 0, 255},
	"chocolate":   {210, 105, 30, 255},
	"cornsilk":    {255, 248, 220, 255},
	"darkblue":    {0, 0, 139, 255},
	"darkcyan":    {0, 139, 139, 255},
	"darkgreen":   {0, 100, 0, 255},
	"darkred":     {139, 0, 0, 255},
	"deeppink":    {255, 20, 147, 255},
	"deepskyblue": {0, 191, 255, 255},
	"dodgerblue":  {30, 144, 255, 255},
	"firebrick":   {178, 34, 34, 255},
	"forestgreen": {34, 139, 34, 255},
	"hotpink":     {255, 105, 180, 255},
	"indianred":   {205, 92, 92, 255},
	"ivory":       {255, 255, 240, 255},
	"lightblue":   {173, 216, 230, 255},
	"lightgreen":  {144, 238, 144, 255},
	"lightpink":   {255, 182, 193, 255},
	"lightyellow": {255, 255, 224, 255},
	"limegreen":   {50, 205, 50, 255},
	"linen":       {250, 240, 230, 255},
	"mintcream":   {245, 255, 250, 255},
	"navajowhite": {255, 222, 173, 255},
	"orangered":   {255, 69, 0, 255},
	"orchid":      {218, 112, 214, 255},
	"peru":        {205, 133, 63, 255},
	"plum":        {221, 160, 221, 255},
	"royalblue":   {65, 105, 225, 255},
	"saddlebrown": {139, 69, 19, 255},
	"seagreen":    {46, 139, 87, 255},
	"seashell":    {255, 245, 238, 255},
	"sienna":      {160, 82, 45, 255},
	"slateblue":   {106, 90, 205, 255},
	"snow":        {255, 250, 250, 255},
	"springgreen": {0, 255, 127, 255},
	"tan":         {210, 180, 140, 255},
	"thistle":     {216, 191, 216, 255},
	"yellowgreen": {154, 205, 50, 255},
	"cadetblue":   {95, 158, 160, 255},
	"darkorange":  {255, 140, 0, 255},
	"darkviolet":  {148, 0, 211, 255},
	"midnightblue": {25, 25, 112, 255},
	"mediumblue":  {0, 0, 205, 255},
	"powderblue":  {176, 224, 230, 255},
	"rosybrown":   {188, 143, 143, 255},
}
