package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodeck/internal/ui/theme"
)

const bannerArt = `
 ██╗     ██╗███╗   ██╗ ██████╗  ██████╗ ██████╗ ███████╗ ██████╗██╗  ██╗
 ██║     ██║████╗  ██║██╔════╝ ██╔═══██╗██╔══██╗██╔════╝██╔════╝██║ ██╔╝
 ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║██║  ██║█████╗  ██║     █████╔╝
 ██║     ██║██║╚██╗██║██║   ██║██║   ██║██║  ██║██╔══╝  ██║     ██╔═██╗
 ███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝██████╔╝███████╗╚██████╗██║  ██╗
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ ╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "L I N G O D E C K"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 74

// RenderBanner returns the banner styled in the primary color, or a compact
// fallback on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
