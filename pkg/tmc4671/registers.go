// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package tmc4671

// TMC4671 register addresses.
// Register names and descriptions taken from the TMC4671-LA datasheet,
// ©2022 TRINAMIC Motion Control GmbH & Co. KG, Hamburg, Germany.
const (
	// RegChipinfoData displays name and version information of the
	// accessed IC. It can be used for a test of communication. The
	// displayed field is selected through RegChipinfoAddr.
	RegChipinfoData uint8 = 0x00
	// RegChipinfoAddr selects the information displayed in
	// RegChipinfoData.
	RegChipinfoAddr uint8 = 0x01
	// RegAdcRawData displays raw ADC values; the displayed channel is
	// switched through RegAdcRawAddr.
	RegAdcRawData uint8 = 0x02
	RegAdcRawAddr uint8 = 0x03

	RegDsadcMcfgBMcfgA       uint8 = 0x04
	RegDsadcMclkA            uint8 = 0x05
	RegDsadcMclkB            uint8 = 0x06
	RegDsadcMdecBMdecA       uint8 = 0x07
	RegAdcI1ScaleOffset      uint8 = 0x08
	RegAdcI0ScaleOffset      uint8 = 0x09
	RegAdcISelect            uint8 = 0x0A
	RegAdcI1I0Ext            uint8 = 0x0B
	RegDsAnalogInputStageCfg uint8 = 0x0C
	RegAenc0ScaleOffset      uint8 = 0x0D
	RegAenc1ScaleOffset      uint8 = 0x0E
	RegAenc2ScaleOffset      uint8 = 0x0F
	RegAencSelect            uint8 = 0x11
	RegAdcIwyIux             uint8 = 0x12
	RegAdcIv                 uint8 = 0x13
	RegAencWyUx              uint8 = 0x15
	RegAencVn                uint8 = 0x16

	RegPwmPolarities       uint8 = 0x17
	RegPwmMaxcnt           uint8 = 0x18
	RegPwmBbmHBbmL         uint8 = 0x19
	RegPwmSvChop           uint8 = 0x1A
	RegMotorTypeNPolePairs uint8 = 0x1B

	RegPhiEExt                uint8 = 0x1C
	RegOpenloopMode           uint8 = 0x1F
	RegOpenloopAcceleration   uint8 = 0x20
	RegOpenloopVelocityTarget uint8 = 0x21
	RegOpenloopVelocityActual uint8 = 0x22
	RegOpenloopPhi            uint8 = 0x23
	RegUqUdExt                uint8 = 0x24

	RegAbnDecoderMode           uint8 = 0x25
	RegAbnDecoderPpr            uint8 = 0x26
	RegAbnDecoderCount          uint8 = 0x27
	RegAbnDecoderCountN         uint8 = 0x28
	RegAbnDecoderPhiEPhiMOffset uint8 = 0x29
	RegAbnDecoderPhiEPhiM       uint8 = 0x2A
	RegAbn2DecoderMode          uint8 = 0x2C
	RegAbn2DecoderPpr           uint8 = 0x2D
	RegAbn2DecoderCount         uint8 = 0x2E
	RegAbn2DecoderCountN        uint8 = 0x2F
	RegAbn2DecoderPhiMOffset    uint8 = 0x30
	RegAbn2DecoderPhiM          uint8 = 0x31

	RegHallMode                 uint8 = 0x33
	RegHallPosition060000       uint8 = 0x34
	RegHallPosition180120       uint8 = 0x35
	RegHallPosition300240       uint8 = 0x36
	RegHallPhiEPhiMOffset       uint8 = 0x37
	RegHallDphiMax              uint8 = 0x38
	RegHallPhiEInterpolatedPhiE uint8 = 0x39
	RegHallPhiM                 uint8 = 0x3A

	RegAencDecoderMode           uint8 = 0x3B
	RegAencDecoderNThreshold     uint8 = 0x3C
	RegAencDecoderPhiARaw        uint8 = 0x3D
	RegAencDecoderPhiAOffset     uint8 = 0x3E
	RegAencDecoderPhiA           uint8 = 0x3F
	RegAencDecoderPpr            uint8 = 0x40
	RegAencDecoderCount          uint8 = 0x41
	RegAencDecoderCountN         uint8 = 0x42
	RegAencDecoderPhiEPhiMOffset uint8 = 0x45
	RegAencDecoderPhiEPhiM       uint8 = 0x46

	RegConfigData uint8 = 0x4D
	RegConfigAddr uint8 = 0x4E

	RegVelocitySelection uint8 = 0x50
	RegPositionSelection uint8 = 0x51
	RegPhiESelection     uint8 = 0x52
	RegPhiE              uint8 = 0x53

	RegPidFluxPFluxI         uint8 = 0x54
	RegPidTorquePTorqueI     uint8 = 0x56
	RegPidVelocityPVelocityI uint8 = 0x58
	RegPidPositionPPositionI uint8 = 0x5A
	RegPidoutUqUdLimits      uint8 = 0x5D
	RegPidTorqueFluxLimits   uint8 = 0x5E
	RegPidVelocityLimit      uint8 = 0x60
	RegPidPositionLimitLow   uint8 = 0x61
	RegPidPositionLimitHigh  uint8 = 0x62
	RegModeRampModeMotion    uint8 = 0x63
	RegPidTorqueFluxTarget   uint8 = 0x64
	RegPidTorqueFluxOffset   uint8 = 0x65
	RegPidVelocityTarget     uint8 = 0x66
	RegPidVelocityOffset     uint8 = 0x67
	RegPidPositionTarget     uint8 = 0x68
	RegPidTorqueFluxActual   uint8 = 0x69
	RegPidVelocityActual     uint8 = 0x6A
	RegPidPositionActual     uint8 = 0x6B
	RegPidErrorData          uint8 = 0x6C
	RegPidErrorAddr          uint8 = 0x6D
	RegInterimData           uint8 = 0x6E
	RegInterimAddr           uint8 = 0x6F

	RegAdcVmLimits      uint8 = 0x75
	RegInputsRaw        uint8 = 0x76
	RegOutputsRaw       uint8 = 0x77
	RegStepWidth        uint8 = 0x78
	RegUartBps          uint8 = 0x79
	RegGpioDsadciConfig uint8 = 0x7B
	RegStatusFlags      uint8 = 0x7C
	RegStatusMask       uint8 = 0x7D
)

// RegisterDef ties a register address to its datasheet name.
type RegisterDef struct {
	Addr uint8
	Name string
}

// registerTable lists every documented register in address order. It is
// the single source for the name lookups below.
var registerTable = []RegisterDef{
	{RegChipinfoData, "CHIPINFO_DATA"},
	{RegChipinfoAddr, "CHIPINFO_ADDR"},
	{RegAdcRawData, "ADC_RAW_DATA"},
	{RegAdcRawAddr, "ADC_RAW_ADDR"},
	{RegDsadcMcfgBMcfgA, "dsADC_MCFG_B_MCFG_A"},
	{RegDsadcMclkA, "dsADC_MCLK_A"},
	{RegDsadcMclkB, "dsADC_MCLK_B"},
	{RegDsadcMdecBMdecA, "dsADC_MDEC_B_MDEC_A"},
	{RegAdcI1ScaleOffset, "ADC_I1_SCALE_OFFSET"},
	{RegAdcI0ScaleOffset, "ADC_I0_SCALE_OFFSET"},
	{RegAdcISelect, "ADC_I_SELECT"},
	{RegAdcI1I0Ext, "ADC_I1_I0_EXT"},
	{RegDsAnalogInputStageCfg, "DS_ANALOG_INPUT_STAGE_CFG"},
	{RegAenc0ScaleOffset, "AENC_0_SCALE_OFFSET"},
	{RegAenc1ScaleOffset, "AENC_1_SCALE_OFFSET"},
	{RegAenc2ScaleOffset, "AENC_2_SCALE_OFFSET"},
	{RegAencSelect, "AENC_SELECT"},
	{RegAdcIwyIux, "ADC_IWY_IUX"},
	{RegAdcIv, "ADC_IV"},
	{RegAencWyUx, "AENC_WY_UX"},
	{RegAencVn, "AENC_VN"},
	{RegPwmPolarities, "PWM_POLARITIES"},
	{RegPwmMaxcnt, "PWM_MAXCNT"},
	{RegPwmBbmHBbmL, "PWM_BBM_H_BBM_L"},
	{RegPwmSvChop, "PWM_SV_CHOP"},
	{RegMotorTypeNPolePairs, "MOTOR_TYPE_N_POLE_PAIRS"},
	{RegPhiEExt, "PHI_E_EXT"},
	{RegOpenloopMode, "OPENLOOP_MODE"},
	{RegOpenloopAcceleration, "OPENLOOP_ACCELERATION"},
	{RegOpenloopVelocityTarget, "OPENLOOP_VELOCITY_TARGET"},
	{RegOpenloopVelocityActual, "OPENLOOP_VELOCITY_ACTUAL"},
	{RegOpenloopPhi, "OPENLOOP_PHI"},
	{RegUqUdExt, "UQ_UD_EXT"},
	{RegAbnDecoderMode, "ABN_DECODER_MODE"},
	{RegAbnDecoderPpr, "ABN_DECODER_PPR"},
	{RegAbnDecoderCount, "ABN_DECODER_COUNT"},
	{RegAbnDecoderCountN, "ABN_DECODER_COUNT_N"},
	{RegAbnDecoderPhiEPhiMOffset, "ABN_DECODER_PHI_E_PHI_M_OFFSET"},
	{RegAbnDecoderPhiEPhiM, "ABN_DECODER_PHI_E_PHI_M"},
	{RegAbn2DecoderMode, "ABN_2_DECODER_MODE"},
	{RegAbn2DecoderPpr, "ABN_2_DECODER_PPR"},
	{RegAbn2DecoderCount, "ABN_2_DECODER_COUNT"},
	{RegAbn2DecoderCountN, "ABN_2_DECODER_COUNT_N"},
	{RegAbn2DecoderPhiMOffset, "ABN_2_DECODER_PHI_M_OFFSET"},
	{RegAbn2DecoderPhiM, "ABN_2_DECODER_PHI_M"},
	{RegHallMode, "HALL_MODE"},
	{RegHallPosition060000, "HALL_POSITION_060_000"},
	{RegHallPosition180120, "HALL_POSITION_180_120"},
	{RegHallPosition300240, "HALL_POSITION_300_240"},
	{RegHallPhiEPhiMOffset, "HALL_PHI_E_PHI_M_OFFSET"},
	{RegHallDphiMax, "HALL_DPHI_MAX"},
	{RegHallPhiEInterpolatedPhiE, "HALL_PHI_E_INTERPOLATED_PHI_E"},
	{RegHallPhiM, "HALL_PHI_M"},
	{RegAencDecoderMode, "AENC_DECODER_MODE"},
	{RegAencDecoderNThreshold, "AENC_DECODER_N_THRESHOLD"},
	{RegAencDecoderPhiARaw, "AENC_DECODER_PHI_A_RAW"},
	{RegAencDecoderPhiAOffset, "AENC_DECODER_PHI_A_OFFSET"},
	{RegAencDecoderPhiA, "AENC_DECODER_PHI_A"},
	{RegAencDecoderPpr, "AENC_DECODER_PPR"},
	{RegAencDecoderCount, "AENC_DECODER_COUNT"},
	{RegAencDecoderCountN, "AENC_DECODER_COUNT_N"},
	{RegAencDecoderPhiEPhiMOffset, "AENC_DECODER_PHI_E_PHI_M_OFFSET"},
	{RegAencDecoderPhiEPhiM, "AENC_DECODER_PHI_E_PHI_M"},
	{RegConfigData, "CONFIG_DATA"},
	{RegConfigAddr, "CONFIG_ADDR"},
	{RegVelocitySelection, "VELOCITY_SELECTION"},
	{RegPositionSelection, "POSITION_SELECTION"},
	{RegPhiESelection, "PHI_E_SELECTION"},
	{RegPhiE, "PHI_E"},
	{RegPidFluxPFluxI, "PID_FLUX_P_FLUX_I"},
	{RegPidTorquePTorqueI, "PID_TORQUE_P_TORQUE_I"},
	{RegPidVelocityPVelocityI, "PID_VELOCITY_P_VELOCITY_I"},
	{RegPidPositionPPositionI, "PID_POSITION_P_POSITION_I"},
	{RegPidoutUqUdLimits, "PIDOUT_UQ_UD_LIMITS"},
	{RegPidTorqueFluxLimits, "PID_TORQUE_FLUX_LIMITS"},
	{RegPidVelocityLimit, "PID_VELOCITY_LIMIT"},
	{RegPidPositionLimitLow, "PID_POSITION_LIMIT_LOW"},
	{RegPidPositionLimitHigh, "PID_POSITION_LIMIT_HIGH"},
	{RegModeRampModeMotion, "MODE_RAMP_MODE_MOTION"},
	{RegPidTorqueFluxTarget, "PID_TORQUE_FLUX_TARGET"},
	{RegPidTorqueFluxOffset, "PID_TORQUE_FLUX_OFFSET"},
	{RegPidVelocityTarget, "PID_VELOCITY_TARGET"},
	{RegPidVelocityOffset, "PID_VELOCITY_OFFSET"},
	{RegPidPositionTarget, "PID_POSITION_TARGET"},
	{RegPidTorqueFluxActual, "PID_TORQUE_FLUX_ACTUAL"},
	{RegPidVelocityActual, "PID_VELOCITY_ACTUAL"},
	{RegPidPositionActual, "PID_POSITION_ACTUAL"},
	{RegPidErrorData, "PID_ERROR_DATA"},
	{RegPidErrorAddr, "PID_ERROR_ADDR"},
	{RegInterimData, "INTERIM_DATA"},
	{RegInterimAddr, "INTERIM_ADDR"},
	{RegAdcVmLimits, "ADC_VM_LIMITS"},
	{RegInputsRaw, "TMC4671_INPUTS_RAW"},
	{RegOutputsRaw, "TMC4671_OUTPUTS_RAW"},
	{RegStepWidth, "STEP_WIDTH"},
	{RegUartBps, "UART_BPS"},
	{RegGpioDsadciConfig, "GPIO_dsADCI_CONFIG"},
	{RegStatusFlags, "STATUS_FLAGS"},
	{RegStatusMask, "STATUS_MASK"},
}

var (
	registerNames = make(map[uint8]string, len(registerTable))
	registerAddrs = make(map[string]uint8, len(registerTable))
)

func init() {
	for _, def := range registerTable {
		registerNames[def.Addr] = def.Name
		registerAddrs[canonicalName(def.Name)] = def.Addr
	}
}

// canonicalName folds a register name for case-insensitive lookup.
func canonicalName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// RegisterName returns the datasheet name for an address, or "UNKNOWN"
// for undocumented addresses.
func RegisterName(addr uint8) string {
	if name, ok := registerNames[addr]; ok {
		return name
	}
	return "UNKNOWN"
}

// LookupRegister resolves a datasheet register name (case-insensitive)
// to its address.
func LookupRegister(name string) (uint8, bool) {
	addr, ok := registerAddrs[canonicalName(name)]
	return addr, ok
}

// Registers returns the documented register table in address order.
func Registers() []RegisterDef {
	out := make([]RegisterDef, len(registerTable))
	copy(out, registerTable)
	return out
}
