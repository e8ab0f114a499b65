package styles

import "github.com/charmbracelet/lipgloss"

// Themes maps a slug to its Base16 palette.
var Themes = map[string]Theme{
	"catppuccin-mocha": {
		Name:   "Catppuccin Mocha",
		Base00: lipgloss.Color("#1e1e2e"),
		Base01: lipgloss.Color("#181825"),
		Base02: lipgloss.Color("#313244"),
		Base03: lipgloss.Color("#45475a"),
		Base04: lipgloss.Color("#585b70"),
		Base05: lipgloss.Color("#cdd6f4"),
		Base06: lipgloss.Color("#f5e0dc"),
		Base07: lipgloss.Color("#b4befe"),
		Base08: lipgloss.Color("#f38ba8"),
		Base09: lipgloss.Color("#fab387"),
		Base0A: lipgloss.Color("#f9e2af"),
		Base0B: lipgloss.Color("#a6e3a1"),
		Base0C: lipgloss.Color("#94e2d5"),
		Base0D: lipgloss.Color("#89b4fa"),
		Base0E: lipgloss.Color("#cba6f7"),
		Base0F: lipgloss.Color("#f2cdcd"),
	},
	"default-dark": {
		Name:   "Default Dark",
		Base00: lipgloss.Color("#181818"),
		Base01: lipgloss.Color("#282828"),
		Base02: lipgloss.Color("#383838"),
		Base03: lipgloss.Color("#585858"),
		Base04: lipgloss.Color("#b8b8b8"),
		Base05: lipgloss.Color("#d8d8d8"),
		Base06: lipgloss.Color("#e8e8e8"),
		Base07: lipgloss.Color("#f8f8f8"),
		Base08: lipgloss.Color("#ab4642"),
		Base09: lipgloss.Color("#dc9656"),
		Base0A: lipgloss.Color("#f7ca88"),
		Base0B: lipgloss.Color("#a1b56c"),
		Base0C: lipgloss.Color("#86c1b9"),
		Base0D: lipgloss.Color("#7cafc2"),
		Base0E: lipgloss.Color("#ba8baf"),
		Base0F: lipgloss.Color("#a16946"),
	},
	"default-light": {
		Name:   "Default Light",
		Base00: lipgloss.Color("#f8f8f8"),
		Base01: lipgloss.Color("#e8e8e8"),
		Base02: lipgloss.Color("#d8d8d8"),
		Base03: lipgloss.Color("#b8b8b8"),
		Base04: lipgloss.Color("#585858"),
		Base05: lipgloss.Color("#383838"),
		Base06: lipgloss.Color("#282828"),
		Base07: lipgloss.Color("#181818"),
		Base08: lipgloss.Color("#ab4642"),
		Base09: lipgloss.Color("#dc9656"),
		Base0A: lipgloss.Color("#f7ca88"),
		Base0B: lipgloss.Color("#a1b56c"),
		Base0C: lipgloss.Color("#86c1b9"),
		Base0D: lipgloss.Color("#7cafc2"),
		Base0E: lipgloss.Color("#ba8baf"),
		Base0F: lipgloss.Color("#a16946"),
	},
	"dracula": {
		Name:   "Dracula",
		Base00: lipgloss.Color("#282936"),
		Base01: lipgloss.Color("#3a3c4e"),
		Base02: lipgloss.Color("#4d4f68"),
		Base03: lipgloss.Color("#626483"),
		Base04: lipgloss.Color("#62d6e8"),
		Base05: lipgloss.Color("#e9e9f4"),
		Base06: lipgloss.Color("#f1f2f8"),
		Base07: lipgloss.Color("#f7f7fb"),
		Base08: lipgloss.Color("#ea51b2"),
		Base09: lipgloss.Color("#b45bcf"),
		Base0A: lipgloss.Color("#00f769"),
		Base0B: lipgloss.Color("#ebff87"),
		Base0C: lipgloss.Color("#a1efe4"),
		Base0D: lipgloss.Color("#62d6e8"),
		Base0E: lipgloss.Color("#b45bcf"),
		Base0F: lipgloss.Color("#00f769"),
	},
	"eighties": {
		Name:   "Eighties",
		Base00: lipgloss.Color("#2d2d2d"),
		Base01: lipgloss.Color("#393939"),
		Base02: lipgloss.Color("#515151"),
		Base03: lipgloss.Color("#747369"),
		Base04: lipgloss.Color("#a09f93"),
		Base05: lipgloss.Color("#d3d0c8"),
		Base06: lipgloss.Color("#e8e6df"),
		Base07: lipgloss.Color("#f2f0ec"),
		Base08: lipgloss.Color("#f2777a"),
		Base09: lipgloss.Color("#f99157"),
		Base0A: lipgloss.Color("#ffcc66"),
		Base0B: lipgloss.Color("#99cc99"),
		Base0C: lipgloss.Color("#66cccc"),
		Base0D: lipgloss.Color("#6699cc"),
		Base0E: lipgloss.Color("#cc99cc"),
		Base0F: lipgloss.Color("#d27b53"),
	},
	"everforest": {
		Name:   "Everforest",
		Base00: lipgloss.Color("#2f383e"),
		Base01: lipgloss.Color("#374247"),
		Base02: lipgloss.Color("#4a555b"),
		Base03: lipgloss.Color("#859289"),
		Base04: lipgloss.Color("#9da9a0"),
		Base05: lipgloss.Color("#d3c6aa"),
		Base06: lipgloss.Color("#e4e1cd"),
		Base07: lipgloss.Color("#fdf6e3"),
		Base08: lipgloss.Color("#7fbbb3"),
		Base09: lipgloss.Color("#d699b6"),
		Base0A: lipgloss.Color("#dbbc7f"),
		Base0B: lipgloss.Color("#83c092"),
		Base0C: lipgloss.Color("#e69875"),
		Base0D: lipgloss.Color("#a7c080"),
		Base0E: lipgloss.Color("#e67e80"),
		Base0F: lipgloss.Color("#eaedc8"),
	},
	"github": {
		Name:   "Github",
		Base00: lipgloss.Color("#ffffff"),
		Base01: lipgloss.Color("#f5f5f5"),
		Base02: lipgloss.Color("#c8c8fa"),
		Base03: lipgloss.Color("#969896"),
		Base04: lipgloss.Color("#e8e8e8"),
		Base05: lipgloss.Color("#333333"),
		Base06: lipgloss.Color("#ffffff"),
		Base07: lipgloss.Color("#ffffff"),
		Base08: lipgloss.Color("#ed6a43"),
		Base09: lipgloss.Color("#0086b3"),
		Base0A: lipgloss.Color("#795da3"),
		Base0B: lipgloss.Color("#183691"),
		Base0C: lipgloss.Color("#183691"),
		Base0D: lipgloss.Color("#795da3"),
		Base0E: lipgloss.Color("#a71d5d"),
		Base0F: lipgloss.Color("#333333"),
	},
	"gruvbox-dark-medium": {
		Name:   "Gruvbox Dark Medium",
		Base00: lipgloss.Color("#282828"),
		Base01: lipgloss.Color("#3c3836"),
		Base02: lipgloss.Color("#504945"),
		Base03: lipgloss.Color("#665c54"),
		Base04: lipgloss.Color("#bdae93"),
		Base05: lipgloss.Color("#d5c4a1"),
		Base06: lipgloss.Color("#ebdbb2"),
		Base07: lipgloss.Color("#fbf1c7"),
		Base08: lipgloss.Color("#fb4934"),
		Base09: lipgloss.Color("#fe8019"),
		Base0A: lipgloss.Color("#fabd2f"),
		Base0B: lipgloss.Color("#b8bb26"),
		Base0C: lipgloss.Color("#8ec07c"),
		Base0D: lipgloss.Color("#83a598"),
		Base0E: lipgloss.Color("#d3869b"),
		Base0F: lipgloss.Color("#d65d0e"),
	},
	"gruvbox-light-medium": {
		Name:   "Gruvbox Light Medium",
		Base00: lipgloss.Color("#fbf1c7"),
		Base01: lipgloss.Color("#ebdbb2"),
		Base02: lipgloss.Color("#d5c4a1"),
		Base03: lipgloss.Color("#bdae93"),
		Base04: lipgloss.Color("#665c54"),
		Base05: lipgloss.Color("#504945"),
		Base06: lipgloss.Color("#3c3836"),
		Base07: lipgloss.Color("#282828"),
		Base08: lipgloss.Color("#9d0006"),
		Base09: lipgloss.Color("#af3a03"),
		Base0A: lipgloss.Color("#b57614"),
		Base0B: lipgloss.Color("#79740e"),
		Base0C: lipgloss.Color("#427b58"),
		Base0D: lipgloss.Color("#076678"),
		Base0E: lipgloss.Color("#8f3f71"),
		Base0F: lipgloss.Color("#d65d0e"),
	},
	"material": {
		Name:   "Material",
		Base00: lipgloss.Color("#263238"),
		Base01: lipgloss.Color("#2e3c43"),
		Base02: lipgloss.Color("#314549"),
		Base03: lipgloss.Color("#546e7a"),
		Base04: lipgloss.Color("#b2ccd6"),
		Base05: lipgloss.Color("#eeffff"),
		Base06: lipgloss.Color("#eeffff"),
		Base07: lipgloss.Color("#ffffff"),
		Base08: lipgloss.Color("#f07178"),
		Base09: lipgloss.Color("#f78c6c"),
		Base0A: lipgloss.Color("#ffcb6b"),
		Base0B: lipgloss.Color("#c3e88d"),
		Base0C: lipgloss.Color("#89ddff"),
		Base0D: lipgloss.Color("#82aaff"),
		Base0E: lipgloss.Color("#c792ea"),
		Base0F: lipgloss.Color("#ff5370"),
	},
	"mocha": {
		Name:   "Mocha",
		Base00: lipgloss.Color("#3b3228"),
		Base01: lipgloss.Color("#534636"),
		Base02: lipgloss.Color("#645240"),
		Base03: lipgloss.Color("#7e705a"),
		Base04: lipgloss.Color("#b8afad"),
		Base05: lipgloss.Color("#d0c8c6"),
		Base06: lipgloss.Color("#e9e1dd"),
		Base07: lipgloss.Color("#f5eeeb"),
		Base08: lipgloss.Color("#cb6077"),
		Base09: lipgloss.Color("#d28b71"),
		Base0A: lipgloss.Color("#f4bc87"),
		Base0B: lipgloss.Color("#beb55b"),
		Base0C: lipgloss.Color("#7bbda4"),
		Base0D: lipgloss.Color("#8ab3b5"),
		Base0E: lipgloss.Color("#a89bb9"),
		Base0F: lipgloss.Color("#bb9584"),
	},
	"monokai": {
		Name:   "Monokai",
		Base00: lipgloss.Color("#272822"),
		Base01: lipgloss.Color("#383830"),
		Base02: lipgloss.Color("#49483e"),
		Base03: lipgloss.Color("#75715e"),
		Base04: lipgloss.Color("#a59f85"),
		Base05: lipgloss.Color("#f8f8f2"),
		Base06: lipgloss.Color("#f5f4f1"),
		Base07: lipgloss.Color("#f9f8f5"),
		Base08: lipgloss.Color("#f92672"),
		Base09: lipgloss.Color("#fd971f"),
		Base0A: lipgloss.Color("#f4bf75"),
		Base0B: lipgloss.Color("#a6e22e"),
		Base0C: lipgloss.Color("#a1efe4"),
		Base0D: lipgloss.Color("#66d9ef"),
		Base0E: lipgloss.Color("#ae81ff"),
		Base0F: lipgloss.Color("#cc6633"),
	},
	"nord": {
		Name:   "Nord",
		Base00: lipgloss.Color("#2e3440"),
		Base01: lipgloss.Color("#3b4252"),
		Base02: lipgloss.Color("#434c5e"),
		Base03: lipgloss.Color("#4c566a"),
		Base04: lipgloss.Color("#d8dee9"),
		Base05: lipgloss.Color("#e5e9f0"),
		Base06: lipgloss.Color("#eceff4"),
		Base07: lipgloss.Color("#8fbcbb"),
		Base08: lipgloss.Color("#bf616a"),
		Base09: lipgloss.Color("#d08770"),
		Base0A: lipgloss.Color("#ebcb8b"),
		Base0B: lipgloss.Color("#a3be8c"),
		Base0C: lipgloss.Color("#88c0d0"),
		Base0D: lipgloss.Color("#81a1c1"),
		Base0E: lipgloss.Color("#b48ead"),
		Base0F: lipgloss.Color("#5e81ac"),
	},
	"ocean": {
		Name:   "Ocean",
		Base00: lipgloss.Color("#2b303b"),
		Base01: lipgloss.Color("#343d46"),
		Base02: lipgloss.Color("#4f5b66"),
		Base03: lipgloss.Color("#65737e"),
		Base04: lipgloss.Color("#a7adba"),
		Base05: lipgloss.Color("#c0c5ce"),
		Base06: lipgloss.Color("#dfe1e8"),
		Base07: lipgloss.Color("#eff1f5"),
		Base08: lipgloss.Color("#bf616a"),
		Base09: lipgloss.Color("#d08770"),
		Base0A: lipgloss.Color("#ebcb8b"),
		Base0B: lipgloss.Color("#a3be8c"),
		Base0C: lipgloss.Color("#96b5b4"),
		Base0D: lipgloss.Color("#8fa1b3"),
		Base0E: lipgloss.Color("#b48ead"),
		Base0F: lipgloss.Color("#ab7967"),
	},
	"onedark": {
		Name:   "OneDark",
		Base00: lipgloss.Color("#282c34"),
		Base01: lipgloss.Color("#353b45"),
		Base02: lipgloss.Color("#3e4451"),
		Base03: lipgloss.Color("#545862"),
		Base04: lipgloss.Color("#565c64"),
		Base05: lipgloss.Color("#abb2bf"),
		Base06: lipgloss.Color("#b6bdca"),
		Base07: lipgloss.Color("#c8ccd4"),
		Base08: lipgloss.Color("#e06c75"),
		Base09: lipgloss.Color("#d19a66"),
		Base0A: lipgloss.Color("#e5c07b"),
		Base0B: lipgloss.Color("#98c379"),
		Base0C: lipgloss.Color("#56b6c2"),
		Base0D: lipgloss.Color("#61afef"),
		Base0E: lipgloss.Color("#c678dd"),
		Base0F: lipgloss.Color("#be5046"),
	},
	"rose-pine": {
		Name:   "Rosé Pine",
		Base00: lipgloss.Color("#191724"),
		Base01: lipgloss.Color("#1f1d2e"),
		Base02: lipgloss.Color("#26233a"),
		Base03: lipgloss.Color("#6e6a86"),
		Base04: lipgloss.Color("#908caa"),
		Base05: lipgloss.Color("#e0def4"),
		Base06: lipgloss.Color("#e0def4"),
		Base07: lipgloss.Color("#524f67"),
		Base08: lipgloss.Color("#eb6f92"),
		Base09: lipgloss.Color("#f6c177"),
		Base0A: lipgloss.Color("#ebbcba"),
		Base0B: lipgloss.Color("#31748f"),
		Base0C: lipgloss.Color("#9ccfd8"),
		Base0D: lipgloss.Color("#c4a7e7"),
		Base0E: lipgloss.Color("#f6c177"),
		Base0F: lipgloss.Color("#524f67"),
	},
	"solarized-dark": {
		Name:   "Solarized Dark",
		Base00: lipgloss.Color("#002b36"),
		Base01: lipgloss.Color("#073642"),
		Base02: lipgloss.Color("#586e75"),
		Base03: lipgloss.Color("#657b83"),
		Base04: lipgloss.Color("#839496"),
		Base05: lipgloss.Color("#93a1a1"),
		Base06: lipgloss.Color("#eee8d5"),
		Base07: lipgloss.Color("#fdf6e3"),
		Base08: lipgloss.Color("#dc322f"),
		Base09: lipgloss.Color("#cb4b16"),
		Base0A: lipgloss.Color("#b58900"),
		Base0B: lipgloss.Color("#859900"),
		Base0C: lipgloss.Color("#2aa198"),
		Base0D: lipgloss.Color("#268bd2"),
		Base0E: lipgloss.Color("#6c71c4"),
		Base0F: lipgloss.Color("#d33682"),
	},
	"solarized-light": {
		Name:   "Solarized Light",
		Base00: lipgloss.Color("#fdf6e3"),
		Base01: lipgloss.Color("#eee8d5"),
		Base02: lipgloss.Color("#93a1a1"),
		Base03: lipgloss.Color("#839496"),
		Base04: lipgloss.Color("#657b83"),
		Base05: lipgloss.Color("#586e75"),
		Base06: lipgloss.Color("#073642"),
		Base07: lipgloss.Color("#002b36"),
		Base08: lipgloss.Color("#dc322f"),
		Base09: lipgloss.Color("#cb4b16"),
		Base0A: lipgloss.Color("#b58900"),
		Base0B: lipgloss.Color("#859900"),
		Base0C: lipgloss.Color("#2aa198"),
		Base0D: lipgloss.Color("#268bd2"),
		Base0E: lipgloss.Color("#6c71c4"),
		Base0F: lipgloss.Color("#d33682"),
	},
	"tokyo-night-dark": {
		Name:   "Tokyo Night Dark",
		Base00: lipgloss.Color("#1a1b26"),
		Base01: lipgloss.Color("#16161e"),
		Base02: lipgloss.Color("#2f3549"),
		Base03: lipgloss.Color("#444b6a"),
		Base04: lipgloss.Color("#787c99"),
		Base05: lipgloss.Color("#a9b1d6"),
		Base06: lipgloss.Color("#cbccd1"),
		Base07: lipgloss.Color("#d5d6db"),
		Base08: lipgloss.Color("#c0caf5"),
		Base09: lipgloss.Color("#a9b1d6"),
		Base0A: lipgloss.Color("#0db9d7"),
		Base0B: lipgloss.Color("#9ece6a"),
		Base0C: lipgloss.Color("#b4f9f8"),
		Base0D: lipgloss.Color("#2ac3de"),
		Base0E: lipgloss.Color("#bb9af7"),
		Base0F: lipgloss.Color("#f7768e"),
	},
	"tomorrow": {
		Name:   "Tomorrow",
		Base00: lipgloss.Color("#ffffff"),
		Base01: lipgloss.Color("#e0e0e0"),
		Base02: lipgloss.Color("#d6d6d6"),
		Base03: lipgloss.Color("#8e908c"),
		Base04: lipgloss.Color("#969896"),
		Base05: lipgloss.Color("#4d4d4c"),
		Base06: lipgloss.Color("#282a2e"),
		Base07: lipgloss.Color("#1d1f21"),
		Base08: lipgloss.Color("#c82829"),
		Base09: lipgloss.Color("#f5871f"),
		Base0A: lipgloss.Color("#eab700"),
		Base0B: lipgloss.Color("#718c00"),
		Base0C: lipgloss.Color("#3e999f"),
		Base0D: lipgloss.Color("#4271ae"),
		Base0E: lipgloss.Color("#8959a8"),
		Base0F: lipgloss.Color("#a3685a"),
	},
	"tomorrow-night": {
		Name:   "Tomorrow Night",
		Base00: lipgloss.Color("#1d1f21"),
		Base01: lipgloss.Color("#282a2e"),
		Base02: lipgloss.Color("#373b41"),
		Base03: lipgloss.Color("#969896"),
		Base04: lipgloss.Color("#b4b7b4"),
		Base05: lipgloss.Color("#c5c8c6"),
		Base06: lipgloss.Color("#e0e0e0"),
		Base07: lipgloss.Color("#ffffff"),
		Base08: lipgloss.Color("#cc6666"),
		Base09: lipgloss.Color("#de935f"),
		Base0A: lipgloss.Color("#f0c674"),
		Base0B: lipgloss.Color("#b5bd68"),
		Base0C: lipgloss.Color("#8abeb7"),
		Base0D: lipgloss.Color("#81a2be"),
		Base0E: lipgloss.Color("#b294bb"),
		Base0F: lipgloss.Color("#a3685a"),
	},
}
