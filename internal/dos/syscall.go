// Package dos catalogs the DOS INT 21h programming interface.
//
// A program requests a DOS service by loading a function number into AH and
// executing int 21h. The catalog covers functions 0x00 through 0x6C; the
// reserved slots in that range are kept so the numbering stays dense.
package dos

import (
	"fmt"

	"uncom/internal/comfile"
)

// Func is an INT 21h function number.
type Func uint8

// MaxFunc is the highest cataloged function number.
const MaxFunc Func = 0x6C

const (
	ProgramTerminate            Func = 0x00
	CharacterInput              Func = 0x01
	CharacterOutput             Func = 0x02
	AuxiliaryInput              Func = 0x03
	AuxiliaryOutput             Func = 0x04
	PrinterOutput               Func = 0x05
	DirectConsoleIO             Func = 0x06
	DirectConsoleInputNoEcho    Func = 0x07
	ConsoleInputNoEcho          Func = 0x08
	DisplayString               Func = 0x09
	BufferedKeyboardInput       Func = 0x0A
	GetInputStatus              Func = 0x0B
	FlushInputBuffer            Func = 0x0C
	DiskReset                   Func = 0x0D
	SetDefaultDrive             Func = 0x0E
	OpenFile                    Func = 0x0F
	CloseFile                   Func = 0x10
	FindFirstFile               Func = 0x11
	FindNextFile                Func = 0x12
	DeleteFile                  Func = 0x13
	SequentialRead              Func = 0x14
	SequentialWrite             Func = 0x15
	CreateOrTruncateFile        Func = 0x16
	RenameFile                  Func = 0x17
	Reserved18                  Func = 0x18
	GetDefaultDrive             Func = 0x19
	SetDiskTransferAddress      Func = 0x1A
	GetAllocInfoDefault         Func = 0x1B
	GetAllocInfoSpecified       Func = 0x1C
	Reserved1D                  Func = 0x1D
	Reserved1E                  Func = 0x1E
	GetDPBDefault               Func = 0x1F
	Reserved20                  Func = 0x20
	RandomRead                  Func = 0x21
	RandomWrite                 Func = 0x22
	GetFileSizeRecords          Func = 0x23
	SetRandomRecordNumber       Func = 0x24
	SetInterruptVector          Func = 0x25
	CreatePSP                   Func = 0x26
	RandomBlockRead             Func = 0x27
	RandomBlockWrite            Func = 0x28
	ParseFilename               Func = 0x29
	GetDate                     Func = 0x2A
	SetDate                     Func = 0x2B
	GetTime                     Func = 0x2C
	SetTime                     Func = 0x2D
	SetVerifyFlag               Func = 0x2E
	GetDiskTransferAddress      Func = 0x2F
	GetDosVersion               Func = 0x30
	TerminateAndStayResident    Func = 0x31
	GetDPBSpecified             Func = 0x32
	GetOrSetCtrlBreak           Func = 0x33
	GetInDOSFlag                Func = 0x34
	GetInterruptVector          Func = 0x35
	GetFreeDiskSpace            Func = 0x36
	GetOrSetSwitchChar          Func = 0x37
	GetOrSetCountryInfo         Func = 0x38
	CreateSubdirectory          Func = 0x39
	RemoveSubdirectory          Func = 0x3A
	ChangeCurrentDirectory      Func = 0x3B
	CreateFile                  Func = 0x3C
	OpenFile2                   Func = 0x3D
	CloseFile2                  Func = 0x3E
	ReadFileOrDevice            Func = 0x3F
	WriteFileOrDevice           Func = 0x40
	DeleteFile2                 Func = 0x41
	MoveFilePointer             Func = 0x42
	GetOrSetFileAttr            Func = 0x43
	IOControl                   Func = 0x44
	DuplicateHandle             Func = 0x45
	RedirectHandle              Func = 0x46
	GetCurrentDirectory         Func = 0x47
	AllocateMemory              Func = 0x48
	ReleaseMemory               Func = 0x49
	ReallocateMemory            Func = 0x4A
	ExecuteProgram              Func = 0x4B
	TerminateWithCode           Func = 0x4C
	GetProgramReturnCode        Func = 0x4D
	FindFirstFile2              Func = 0x4E
	FindNextFile2               Func = 0x4F
	SetCurrentPSP               Func = 0x50
	GetCurrentPSP               Func = 0x51
	GetDosInternalPointers      Func = 0x52
	CreateDPB                   Func = 0x53
	GetVerifyFlag               Func = 0x54
	CreateProgramPSP            Func = 0x55
	RenameFile2                 Func = 0x56
	GetOrSetFileDateTime        Func = 0x57
	GetOrSetAllocStrategy       Func = 0x58
	GetExtendedError            Func = 0x59
	CreateUniqueFile            Func = 0x5A
	CreateNewFile               Func = 0x5B
	LockOrUnlockFile            Func = 0x5C
	FileSharingFunctions        Func = 0x5D
	NetworkFunctions            Func = 0x5E
	NetworkRedirectionFunctions Func = 0x5F
	QualifyFilename             Func = 0x60
	Reserved61                  Func = 0x61
	GetCurrentPSPAlt            Func = 0x62
	GetDBCSLeadByteTable        Func = 0x63
	SetWaitForEvent             Func = 0x64
	GetExtendedCountryInfo      Func = 0x65
	GetOrSetCodePage            Func = 0x66
	SetHandleCount              Func = 0x67
	CommitFile                  Func = 0x68
	GetOrSetMediaID             Func = 0x69
	CommitFileAlt               Func = 0x6A
	Reserved6B                  Func = 0x6B
	ExtendedOpenCreateFile      Func = 0x6C
)

var funcNames = [MaxFunc + 1]string{
	"ProgramTerminate",
	"CharacterInput",
	"CharacterOutput",
	"AuxiliaryInput",
	"AuxiliaryOutput",
	"PrinterOutput",
	"DirectConsoleIO",
	"DirectConsoleInputNoEcho",
	"ConsoleInputNoEcho",
	"DisplayString",
	"BufferedKeyboardInput",
	"GetInputStatus",
	"FlushInputBuffer",
	"DiskReset",
	"SetDefaultDrive",
	"OpenFile",
	"CloseFile",
	"FindFirstFile",
	"FindNextFile",
	"DeleteFile",
	"SequentialRead",
	"SequentialWrite",
	"CreateOrTruncateFile",
	"RenameFile",
	"Reserved18",
	"GetDefaultDrive",
	"SetDiskTransferAddress",
	"GetAllocInfoDefault",
	"GetAllocInfoSpecified",
	"Reserved1D",
	"Reserved1E",
	"GetDPBDefault",
	"Reserved20",
	"RandomRead",
	"RandomWrite",
	"GetFileSizeRecords",
	"SetRandomRecordNumber",
	"SetInterruptVector",
	"CreatePSP",
	"RandomBlockRead",
	"RandomBlockWrite",
	"ParseFilename",
	"GetDate",
	"SetDate",
	"GetTime",
	"SetTime",
	"SetVerifyFlag",
	"GetDiskTransferAddress",
	"GetDosVersion",
	"TerminateAndStayResident",
	"GetDPBSpecified",
	"GetOrSetCtrlBreak",
	"GetInDOSFlag",
	"GetInterruptVector",
	"GetFreeDiskSpace",
	"GetOrSetSwitchChar",
	"GetOrSetCountryInfo",
	"CreateSubdirectory",
	"RemoveSubdirectory",
	"ChangeCurrentDirectory",
	"CreateFile",
	"OpenFile2",
	"CloseFile2",
	"ReadFileOrDevice",
	"WriteFileOrDevice",
	"DeleteFile2",
	"MoveFilePointer",
	"GetOrSetFileAttr",
	"IOControl",
	"DuplicateHandle",
	"RedirectHandle",
	"GetCurrentDirectory",
	"AllocateMemory",
	"ReleaseMemory",
	"ReallocateMemory",
	"ExecuteProgram",
	"TerminateWithCode",
	"GetProgramReturnCode",
	"FindFirstFile2",
	"FindNextFile2",
	"SetCurrentPSP",
	"GetCurrentPSP",
	"GetDosInternalPointers",
	"CreateDPB",
	"GetVerifyFlag",
	"CreateProgramPSP",
	"RenameFile2",
	"GetOrSetFileDateTime",
	"GetOrSetAllocStrategy",
	"GetExtendedError",
	"CreateUniqueFile",
	"CreateNewFile",
	"LockOrUnlockFile",
	"FileSharingFunctions",
	"NetworkFunctions",
	"NetworkRedirectionFunctions",
	"QualifyFilename",
	"Reserved61",
	"GetCurrentPSPAlt",
	"GetDBCSLeadByteTable",
	"SetWaitForEvent",
	"GetExtendedCountryInfo",
	"GetOrSetCodePage",
	"SetHandleCount",
	"CommitFile",
	"GetOrSetMediaID",
	"CommitFileAlt",
	"Reserved6B",
	"ExtendedOpenCreateFile",
}

// Lookup classifies a 16-bit selector value as an INT 21h function.
// Values above 0x6C are not cataloged; ok is false and no record should be
// produced for them. Total over all inputs.
func Lookup(v uint16) (Func, bool) {
	if v > uint16(MaxFunc) {
		return 0, false
	}
	return Func(v), true
}

func (f Func) String() string {
	if f > MaxFunc {
		return fmt.Sprintf("Func(0x%02x)", uint8(f))
	}
	return funcNames[f]
}

// Annotation renders the listing comment form: name followed by the function
// number, e.g. "DisplayString 0x09".
func (f Func) Annotation() string {
	return fmt.Sprintf("%s 0x%02x", f, uint8(f))
}

// Syscall is a recognized INT 21h call site: which function, and the address
// of the interrupt instruction that invokes it.
type Syscall struct {
	Func Func
	Addr comfile.Address
}
