// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package tmc4671

import "fmt"

// ChipInfo selects which field of the chip identification block is
// exposed through CHIPINFO_DATA. The selector is written to
// CHIPINFO_ADDR; see Device.GetChipInfo.
type ChipInfo uint32

// Chip identification fields (SI_* in the datasheet).
const (
	ChipInfoType    ChipInfo = 0x00 // ASCII chip name, "4671"
	ChipInfoVersion ChipInfo = 0x01
	ChipInfoDate    ChipInfo = 0x02
	ChipInfoTime    ChipInfo = 0x03
	ChipInfoVariant ChipInfo = 0x04
	ChipInfoBuild   ChipInfo = 0x05
)

// ChipInfoFields lists all selectors in selector order.
var ChipInfoFields = []ChipInfo{
	ChipInfoType,
	ChipInfoVersion,
	ChipInfoDate,
	ChipInfoTime,
	ChipInfoVariant,
	ChipInfoBuild,
}

func (c ChipInfo) String() string {
	switch c {
	case ChipInfoType:
		return "SI_TYPE"
	case ChipInfoVersion:
		return "SI_VERSION"
	case ChipInfoDate:
		return "SI_DATE"
	case ChipInfoTime:
		return "SI_TIME"
	case ChipInfoVariant:
		return "SI_VARIANT"
	case ChipInfoBuild:
		return "SI_BUILD"
	default:
		return fmt.Sprintf("SI(%d)", uint32(c))
	}
}

// LookupChipInfo resolves a selector name like "SI_TYPE" or "type"
// (case-insensitive, SI_ prefix optional).
func LookupChipInfo(name string) (ChipInfo, bool) {
	folded := canonicalName(name)
	for _, field := range ChipInfoFields {
		full := field.String()
		if folded == full || "SI_"+folded == full {
			return field, true
		}
	}
	return 0, false
}

// FormatChipInfo renders a chip-info value the way the datasheet
// presents the field: SI_TYPE as four ASCII characters, SI_VERSION as
// two 16-bit halves, the rest as plain hex words.
func FormatChipInfo(field ChipInfo, value uint32) string {
	switch field {
	case ChipInfoType:
		return fmt.Sprintf("%q (0x%08X)", string([]byte{
			byte(value >> 24), byte(value >> 16), byte(value >> 8), byte(value),
		}), value)
	case ChipInfoVersion:
		return fmt.Sprintf("%d.%d (0x%08X)", value>>16, value&0xFFFF, value)
	default:
		return fmt.Sprintf("0x%08X", value)
	}
}
