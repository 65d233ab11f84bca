package labelmap

import "strconv"

// Names maps label values to anatomical names
type Names map[int]string

// Name returns the name of value, "Segment <value>" when unknown
func (n Names) Name(value int) string {
	if name, ok := n[value]; ok {
		return name
	}
	return "Segment " + strconv.Itoa(value)
}

// VISTA3D names the classes of the VISTA3D label space, shared by the CT and MRI segmentation models.
var VISTA3D = Names{
	1: "liver",
	2: "kidney",
	3: "spleen",
	4: "pancreas",
	5: "right kidney",
	6: "aorta",
	7: "inferior vena cava",
	8: "right adrenal gland",
	9: "left adrenal gland",
	10: "gallbladder",
	11: "esophagus",
	12: "stomach",
	13: "duodenum",
	14: "left kidney",
	15: "bladder",
	16: "prostate or uterus",
	17: "portal vein and splenic vein",
	18: "rectum",
	19: "small bowel",
	20: "lung",
	21: "bone",
	22: "brain",
	23: "lung tumor",
	24: "pancreatic tumor",
	25: "hepatic vessel",
	26: "hepatic tumor",
	27: "colon cancer primaries",
	28: "left lung upper lobe",
	29: "left lung lower lobe",
	30: "right lung upper lobe",
	31: "right lung middle lobe",
	32: "right lung lower lobe",
	33: "vertebrae L5",
	34: "vertebrae L4",
	35: "vertebrae L3",
	36: "vertebrae L2",
	37: "vertebrae L1",
	38: "vertebrae T12",
	39: "vertebrae T11",
	40: "vertebrae T10",
	41: "vertebrae T9",
	42: "vertebrae T8",
	43: "vertebrae T7",
	44: "vertebrae T6",
	45: "vertebrae T5",
	46: "vertebrae T4",
	47: "vertebrae T3",
	48: "vertebrae T2",
	49: "vertebrae T1",
	50: "vertebrae C7",
	51: "vertebrae C6",
	52: "vertebrae C5",
	53: "vertebrae C4",
	54: "vertebrae C3",
	55: "vertebrae C2",
	56: "vertebrae C1",
	57: "trachea",
	58: "left iliac artery",
	59: "right iliac artery",
	60: "left iliac vena",
	61: "right iliac vena",
	62: "colon",
	63: "left rib 1",
	64: "left rib 2",
	65: "left rib 3",
	66: "left rib 4",
	67: "left rib 5",
	68: "left rib 6",
	69: "left rib 7",
	70: "left rib 8",
	71: "left rib 9",
	72: "left rib 10",
	73: "left rib 11",
	74: "left rib 12",
	75: "right rib 1",
	76: "right rib 2",
	77: "right rib 3",
	78: "right rib 4",
	79: "right rib 5",
	80: "right rib 6",
	81: "right rib 7",
	82: "right rib 8",
	83: "right rib 9",
	84: "right rib 10",
	85: "right rib 11",
	86: "right rib 12",
	87: "left humerus",
	88: "right humerus",
	89: "left scapula",
	90: "right scapula",
	91: "left clavicula",
	92: "right clavicula",
	93: "left femur",
	94: "right femur",
	95: "left hip",
	96: "right hip",
	97: "sacrum",
	98: "left gluteus maximus",
	99: "right gluteus maximus",
	100: "left gluteus medius",
	101: "right gluteus medius",
	102: "left gluteus minimus",
	103: "right gluteus minimus",
	104: "left autochthon",
	105: "right autochthon",
	106: "left iliopsoas",
	107: "right iliopsoas",
	108: "left atrial appendage",
	109: "brachiocephalic trunk",
	110: "left brachiocephalic vein",
	111: "right brachiocephalic vein",
	112: "left common carotid artery",
	113: "right common carotid artery",
	114: "costal cartilages",
	115: "heart",
	116: "left kidney cyst",
	117: "right kidney cyst",
	118: "prostate",
	119: "pulmonary vein",
	120: "skull",
	121: "spinal cord",
	122: "sternum",
	123: "left subclavian artery",
	124: "right subclavian artery",
	125: "superior vena cava",
	126: "thyroid gland",
	127: "vertebrae S1",
	128: "bone lesion",
	129: "kidney mass",
	130: "liver tumor",
	131: "vertebrae L6",
	132: "airway",
}

