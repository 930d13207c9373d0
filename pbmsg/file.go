package pbmsg

import "encoding/binary"

// FileControlAction is the symbolic Action byte a File Control command
// carries (§12 EXPANSION, taken from the source's file-control constants).
type FileControlAction byte

const (
	FileControlCompileAndRun FileControlAction = 0x01
	FileControlStopProgram   FileControlAction = 0x04
	FileControlDelete        FileControlAction = 0x05
	FileControlMoveToCPU     FileControlAction = 0x06
	FileControlRunNow        FileControlAction = 0x07
	FileControlRunOnPowerUp  FileControlAction = 0x08
	FileControlStopAndDelete FileControlAction = 0x09
)

func (a FileControlAction) String() string {
	switch a {
	case FileControlCompileAndRun:
		return "CompileAndRun"
	case FileControlStopProgram:
		return "StopProgram"
	case FileControlDelete:
		return "Delete"
	case FileControlMoveToCPU:
		return "MoveToCPU"
	case FileControlRunNow:
		return "RunNow"
	case FileControlRunOnPowerUp:
		return "RunOnPowerUp"
	case FileControlStopAndDelete:
		return "StopAndDelete"
	default:
		return "Unknown"
	}
}

// FileDownloadCmd builds a File Download command (client writes a file to
// the peer), carrying one Swath-sized chunk of fileData at fileOffset.
func FileDownloadCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16, fileName string, attribute, closeFlag byte, fileOffset uint32, fileData []byte) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, BMP5)
	body := []byte{msgFileDownCmd, tranNbr}
	body = putUint16(body, securityCode)
	body = putASCIIZ(body, fileName)
	body = append(body, attribute, closeFlag)
	body = putUint32(body, fileOffset)
	body = append(body, fileData...)
	return append(hdr.Pack(), body...)
}

// FileDownloadResponse is the decoded File Download response body.
type FileDownloadResponse struct {
	RespCode   byte
	FileOffset uint32
}

// DecodeFileDownloadResponse decodes a File Download response body.
func DecodeFileDownloadResponse(body []byte) (FileDownloadResponse, error) {
	if err := need(body, 5, "FileDownload"); err != nil {
		return FileDownloadResponse{}, err
	}
	return FileDownloadResponse{RespCode: body[0], FileOffset: binary.BigEndian.Uint32(body[1:5])}, nil
}

// FileUploadCmd builds a File Upload command (client reads a file off the
// peer), asking for up to swath bytes starting at fileOffset.
func FileUploadCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16, fileName string, closeFlag byte, fileOffset uint32, swath uint16) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, BMP5)
	body := []byte{msgFileUpCmd, tranNbr}
	body = putUint16(body, securityCode)
	body = putASCIIZ(body, fileName)
	body = append(body, closeFlag)
	body = putUint32(body, fileOffset)
	body = putUint16(body, swath)
	return append(hdr.Pack(), body...)
}

// FileUploadResponse is the decoded File Upload response body.
type FileUploadResponse struct {
	RespCode   byte
	FileOffset uint32
	FileData   []byte
}

// DecodeFileUploadResponse decodes a File Upload response body.
func DecodeFileUploadResponse(body []byte) (FileUploadResponse, error) {
	if err := need(body, 5, "FileUpload"); err != nil {
		return FileUploadResponse{}, err
	}
	return FileUploadResponse{
		RespCode:   body[0],
		FileOffset: binary.BigEndian.Uint32(body[1:5]),
		FileData:   append([]byte(nil), body[5:]...),
	}, nil
}

// FileControlCmd builds a File Control command.
func FileControlCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16, fileName string, action FileControlAction) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, BMP5)
	body := []byte{msgFileCtrlCmd, tranNbr}
	body = putUint16(body, securityCode)
	body = putASCIIZ(body, fileName)
	body = append(body, byte(action))
	return append(hdr.Pack(), body...)
}

// FileControlResponse is the decoded File Control response body.
type FileControlResponse struct {
	RespCode byte
	HoldOff  uint16
}

// DecodeFileControlResponse decodes a File Control response body.
func DecodeFileControlResponse(body []byte) (FileControlResponse, error) {
	if err := need(body, 3, "FileControl"); err != nil {
		return FileControlResponse{}, err
	}
	return FileControlResponse{RespCode: body[0], HoldOff: binary.BigEndian.Uint16(body[1:3])}, nil
}
