package payload

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

type nrrdType struct {
	name     string
	size     int
	dataType string
}

var nrrdTypes = []nrrdType{
	{"uchar", 1, "Uint8Array"},
	{"signed char", 1, "Int8Array"},
	{"short", 2, "Int16Array"},
	{"ushort", 2, "Uint16Array"},
	{"int", 4, "Int32Array"},
	{"uint", 4, "Uint32Array"},
	{"float", 4, "Float32Array"},
	{"double", 8, "Float64Array"},
}

var nrrdAliases = map[string]string{
	"uint8": "uchar", "unsigned char": "uchar", "uint8_t": "uchar",
	"int8": "signed char", "int8_t": "signed char",
	"int16": "short", "short int": "short", "signed short": "short", "int16_t": "short",
	"uint16": "ushort", "unsigned short": "ushort", "uint16_t": "ushort",
	"int32": "int", "signed int": "int", "int32_t": "int",
	"uint32": "uint", "unsigned int": "uint", "uint32_t": "uint",
}

func nrrdTypeByName(name string) (nrrdType, bool) {
	if alias, ok := nrrdAliases[name]; ok {
		name = alias
	}
	for _, candidate := range nrrdTypes {
		if candidate.name == name {
			return candidate, true
		}
	}
	return nrrdType{}, false
}

func nrrdTypeByDataType(dataType string) nrrdType {
	for _, candidate := range nrrdTypes {
		if candidate.dataType == dataType {
			return candidate
		}
	}
	return nrrdTypes[6]
}

// EncodeNRRD writes a single component image as an attached-header NRRD; gzip selects gzip encoding.
func EncodeNRRD(image *Image, gz bool) ([]byte, error) {
	if err := image.Validate(); err != nil {
		return nil, err
	}
	if image.Components() != 1 {
		return nil, fmt.Errorf("nrrd: unsupported number of components: %d", image.Components())
	}
	kind := nrrdTypeByDataType(image.DataType)
	encoding := "raw"
	if gz {
		encoding = "gzip"
	}
	direction := image.DirectionOrIdentity()
	buf := &bytes.Buffer{}
	buf.WriteString("NRRD0004\n")
	fmt.Fprintf(buf, "type: %s\n", kind.name)
	buf.WriteString("dimension: 3\n")
	buf.WriteString("space: left-posterior-superior\n")
	fmt.Fprintf(buf, "sizes: %d %d %d\n", image.Dimensions[0], image.Dimensions[1], image.Dimensions[2])
	buf.WriteString("space directions:")
	for axis := 0; axis < 3; axis++ {
		s := image.Spacing[axis]
		fmt.Fprintf(buf, " (%s,%s,%s)", formatFloat(direction[3*axis]*s), formatFloat(direction[3*axis+1]*s), formatFloat(direction[3*axis+2]*s))
	}
	buf.WriteString("\n")
	buf.WriteString("kinds: domain domain domain\n")
	buf.WriteString("endian: little\n")
	fmt.Fprintf(buf, "encoding: %s\n", encoding)
	fmt.Fprintf(buf, "space origin: (%s,%s,%s)\n\n", formatFloat(image.Origin[0]), formatFloat(image.Origin[1]), formatFloat(image.Origin[2]))

	var writer io.Writer = buf
	var zipper *gzip.Writer
	if gz {
		zipper = gzip.NewWriter(buf)
		writer = zipper
	}
	scratch := make([]byte, 8)
	for _, value := range image.Values {
		putValue(scratch, kind.name, value)
		if _, err := writer.Write(scratch[:kind.size]); err != nil {
			return nil, err
		}
	}
	if zipper != nil {
		if err := zipper.Close(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeNRRD reads an attached-header 3D NRRD with raw or gzip encoding.
func DecodeNRRD(data []byte) (*Image, error) {
	reader := bufio.NewReader(bytes.NewReader(data))
	magic, err := reader.ReadString('\n')
	if err != nil || !strings.HasPrefix(magic, "NRRD") {
		return nil, errors.New("nrrd: missing magic")
	}
	fields := map[string]string{}
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("nrrd: truncated header: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if index := strings.Index(line, ": "); index != -1 {
			fields[line[:index]] = strings.TrimSpace(line[index+2:])
		}
	}
	kind, ok := nrrdTypeByName(fields["type"])
	if !ok {
		return nil, fmt.Errorf("nrrd: unsupported type: %q", fields["type"])
	}
	if fields["dimension"] != "3" {
		return nil, fmt.Errorf("nrrd: unsupported dimension: %q", fields["dimension"])
	}
	image := &Image{NumberOfComponents: 1, DataType: kind.dataType, Spacing: [3]float64{1, 1, 1}, Direction: Identity}
	sizes := strings.Fields(fields["sizes"])
	if len(sizes) != 3 {
		return nil, fmt.Errorf("nrrd: invalid sizes: %q", fields["sizes"])
	}
	for i, size := range sizes {
		if image.Dimensions[i], err = strconv.Atoi(size); err != nil {
			return nil, fmt.Errorf("nrrd: invalid sizes: %w", err)
		}
	}
	if value, ok := fields["space directions"]; ok {
		vectors, err := parseVectors(value)
		if err != nil || len(vectors) != 3 {
			return nil, fmt.Errorf("nrrd: invalid space directions: %q", value)
		}
		for axis, vector := range vectors {
			norm := math.Sqrt(vector[0]*vector[0] + vector[1]*vector[1] + vector[2]*vector[2])
			if norm == 0 {
				return nil, fmt.Errorf("nrrd: zero space direction for axis %d", axis)
			}
			image.Spacing[axis] = norm
			for k := 0; k < 3; k++ {
				image.Direction[3*axis+k] = vector[k] / norm
			}
		}
	} else if value, ok := fields["spacings"]; ok {
		for i, spacing := range strings.Fields(value) {
			if i < 3 {
				image.Spacing[i], _ = strconv.ParseFloat(spacing, 64)
			}
		}
	}
	if value, ok := fields["space origin"]; ok {
		vectors, err := parseVectors(value)
		if err != nil || len(vectors) != 1 {
			return nil, fmt.Errorf("nrrd: invalid space origin: %q", value)
		}
		image.Origin = vectors[0]
	}

	var body io.Reader = reader
	switch fields["encoding"] {
	case "raw":
	case "gzip", "gz":
		zipped, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("nrrd: %w", err)
		}
		defer zipped.Close()
		body = zipped
	default:
		return nil, fmt.Errorf("nrrd: unsupported encoding: %q", fields["encoding"])
	}
	var order binary.ByteOrder = binary.LittleEndian
	if fields["endian"] == "big" {
		order = binary.BigEndian
	}
	image.Values = make([]float64, image.Voxels())
	scratch := make([]byte, kind.size)
	for i := range image.Values {
		if _, err := io.ReadFull(body, scratch); err != nil {
			return nil, fmt.Errorf("nrrd: truncated data at voxel %d: %w", i, err)
		}
		image.Values[i] = readValue(scratch, kind.name, order)
	}
	return image, nil
}

func parseVectors(value string) ([][3]float64, error) {
	var ret [][3]float64
	for _, token := range strings.Fields(value) {
		token = strings.Trim(token, "()")
		parts := strings.Split(token, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid vector: %v", token)
		}
		var vector [3]float64
		for i, part := range parts {
			var err error
			if vector[i], err = strconv.ParseFloat(part, 64); err != nil {
				return nil, err
			}
		}
		ret = append(ret, vector)
	}
	return ret, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func putValue(dest []byte, typeName string, value float64) {
	order := binary.LittleEndian
	switch typeName {
	case "uchar":
		dest[0] = uint8(value)
	case "signed char":
		dest[0] = byte(int8(value))
	case "short":
		order.PutUint16(dest, uint16(int16(value)))
	case "ushort":
		order.PutUint16(dest, uint16(value))
	case "int":
		order.PutUint32(dest, uint32(int32(value)))
	case "uint":
		order.PutUint32(dest, uint32(value))
	case "float":
		order.PutUint32(dest, math.Float32bits(float32(value)))
	default:
		order.PutUint64(dest, math.Float64bits(value))
	}
}

func readValue(src []byte, typeName string, order binary.ByteOrder) float64 {
	switch typeName {
	case "uchar":
		return float64(src[0])
	case "signed char":
		return float64(int8(src[0]))
	case "short":
		return float64(int16(order.Uint16(src)))
	case "ushort":
		return float64(order.Uint16(src))
	case "int":
		return float64(int32(order.Uint32(src)))
	case "uint":
		return float64(order.Uint32(src))
	case "float":
		return float64(math.Float32frombits(order.Uint32(src)))
	default:
		return math.Float64frombits(order.Uint64(src))
	}
}
