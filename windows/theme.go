// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ViewerTheme is a compact theme suited to dense tables.
type ViewerTheme struct{}

var _ fyne.Theme = (*ViewerTheme)(nil)

var (
	lightPalette = map[fyne.ThemeColorName]color.Color{
		theme.ColorNameBackground:       color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff},
		theme.ColorNameHeaderBackground: color.NRGBA{R: 0xe8, G: 0xea, B: 0xed, A: 0xff},
		theme.ColorNamePrimary:          color.NRGBA{R: 0x00, G: 0x79, B: 0x6b, A: 0xff},
		theme.ColorNameSelection:        color.NRGBA{R: 0xb2, G: 0xdf, B: 0xdb, A: 0xff},
		theme.ColorNameSeparator:        color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
		theme.ColorNameForeground:       color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff},
	}
	darkPalette = map[fyne.ThemeColorName]color.Color{
		theme.ColorNameBackground:       color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff},
		theme.ColorNameHeaderBackground: color.NRGBA{R: 0x2a, G: 0x2d, B: 0x31, A: 0xff},
		theme.ColorNamePrimary:          color.NRGBA{R: 0x4d, G: 0xb6, B: 0xac, A: 0xff},
		theme.ColorNameSelection:        color.NRGBA{R: 0x00, G: 0x4d, B: 0x40, A: 0xff},
		theme.ColorNameSeparator:        color.NRGBA{R: 0x3a, G: 0x3a, B: 0x3c, A: 0xff},
		theme.ColorNameForeground:       color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	}
)

func (ViewerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	palette := darkPalette
	if variant == theme.VariantLight {
		palette = lightPalette
	}
	if c, ok := palette[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (ViewerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (ViewerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (ViewerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameScrollBar:
		return 10
	}
	return theme.DefaultTheme().Size(name)
}
