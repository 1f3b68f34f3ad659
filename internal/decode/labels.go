package decode

// fieldLabels gives the display name for each field, per section. Fields
// repeat across sections (nature_of_business_label appears in both
// business_profile and sum_assured), so lookup is section first.
var fieldLabels = map[string]map[string]string{
	"business_profile": {
		"business_name_label":         "Business Name",
		"mobile_number_label":         "Mobile Number",
		"mailing_address_label":       "Mailing Address",
		"office_telephone_label":      "Office Telephone",
		"person_in_charge_label":      "Person In Charge",
		"nature_of_business_label":    "Nature of Business",
		"correspondence_email_label":  "Correspondence Email",
		"business_registration_label": "Business Registration Number",
	},
	"physical_setup": {
		"premise_type_label":           "Premise Type",
		"premise_type_others_label":    "Premise Type (Other)",
		"roof_materials_label":         "Roof Materials",
		"roof_materials_others_label":  "Roof Materials (Other)",
		"wall_materials_label":         "Wall Materials",
		"wall_materials_others_label":  "Wall Materials (Other)",
		"floor_materials_label":        "Floor Materials",
		"floor_materials_others_label": "Floor Materials (Other)",
	},
	"cctv": {
		"recording_label":                         "CCTV Recording",
		"cctv_model_label":                        "CCTV Model",
		"cctv_brand_name_label":                   "CCTV Brand Name",
		"type_of_back_up_label":                   "Type of Backup",
		"type_of_backup_others_label":             "Backup Type (Other)",
		"cctv_maintenance_contract_label":         "CCTV Maintenance Contract",
		"additional_capability_label":             "Additional Capability",
		"additional_capability_others_label":      "Additional Capability (Other)",
		"retained_period_of_cctv_recording_label": "CCTV Recording Retention Period",
	},
	"door_access": {
		"door_access_label":                   "Door Access Type",
		"door_access_others_label":            "Door Access (Other)",
		"others_label":                        "Others",
		"rear_door_label":                     "Rear Door Material",
		"rear_door_others_label":              "Rear Door (Other)",
		"main_door_details_label":             "Main Door Material",
		"main_door_others_label":              "Main Door (Other)",
		"inner_door_details_label":            "Inner Door Material",
		"inner_door_others_label":             "Inner Door (Other)",
		"inner_door_iron_glass_label":         "Inner Door Iron Glass",
		"inner_door_iron_wooden_label":        "Inner Door Iron Wooden",
		"main_door_roll_and_iron_wood_label":  "Main Door Roller/Iron Grill",
		"rear_door_roll_and_iron_wood_label":  "Rear Door Roller/Iron Grill",
		"main_door_roll_and_iron_glass_label": "Main Door Roller/Iron Grill (Glass)",
	},
	"alarm": {
		"do_you_have_alarm_label":           "Alarm Installed",
		"alarm_brand_name_label":            "Alarm Brand Name",
		"alarm_model_label":                 "Alarm Model",
		"connection_type_label":             "Alarm Connection Type",
		"type_of_alarm_system_label":        "Type of Alarm System",
		"type_of_alarm_others_label":        "Alarm Type (Other)",
		"under_maintenance_contract_label":  "Under Maintenance Contract",
		"central_monitoring_stations_label": "Central Monitoring Station",
		"name_of_cms_company_label":         "CMS Company Name",
	},
	"safe": {
		"safe_model_label":                   "Safe Model",
		"safe_weight_label":                  "Safe Weight",
		"safe_brand_name_label":              "Safe Brand Name",
		"safe_time_locking_label":            "Safe Time Locking",
		"grade_label":                        "Safe Grade",
		"certified_label":                    "Safe Certified",
		"key_combination_code_or_both_label": "Key/Combination/Both",
		"key_and_combination_code_held_by_separate_personnel_label": "Key and Code Held Separately",
	},
	"strong_room": {
		"do_you_have_a_strong_room_label": "Strong Room Available",
		"time_locking_label":              "Time Locking",
		"time_locking_brand_label":        "Time Locking Brand",
	},
	"display_showcases": {
		"wall_showcase_thickness_label":                "Wall Showcase Thickness",
		"do_you_have_wall_showcase_label":              "Wall Showcase Available",
		"wall_showcases_are_protected_by_label":        "Wall Showcase Protection",
		"wall_showcases_are_protected_by_others_label": "Wall Showcase Protection (Other)",
	},
	"display_counters": {
		"counter_showcase_thickness_label":             "Counter Showcase Thickness",
		"do_you_have_counter_showcase_label":           "Counter Showcase Available",
		"counter_showcases_are_protected_by_label":     "Counter Showcase Protection",
		"rear_counter_showcase_are_protected_by_label": "Rear Counter Protection",
	},
	"counter_show_case": {
		"thickness_of_counters_label":                        "Counter Thickness",
		"dw_counter_showcases_are_protected_by_label":        "Display Window Counter Protection",
		"dw_counter_showcases_are_protected_by_others_label": "Display Window Counter Protection (Other)",
	},
	"transit_and_gaurds": {
		"usage_of_jaguar_transit_label":                   "Jaguar Transit Used",
		"do_you_use_armoured_vehicle_label":               "Armoured Vehicle Used",
		"do_you_use_guards_at_premise_label":              "Guards at Premise",
		"installed_gps_tracker_in_transit_bags_label":     "GPS Tracker in Transit Bags",
		"do_you_use_armed_guards_during_transit_label":    "Armed Guards During Transit",
		"installed_gps_tracker_in_transit_vehicles_label": "GPS Tracker in Transit Vehicles",
	},
	"records_keeping": {
		"records_maintained_in_label":                           "Records Maintained In",
		"do_you_keep_detailed_records_of_stock_movements_label": "Detailed Stock Records",
	},
	"additional_details": {
		"three_piece_rule_label":                        "Three Piece Rule",
		"the_nearest_police_station_label":              "Nearest Police Station Distance",
		"standard_operating_procedure_label":            "Standard Operating Procedure",
		"background_checks_for_all_employees_label":     "Background Checks for Employees",
		"how_often_is_the_stock_check_carried_out_label": "Stock Check Frequency",
	},
	"display_window": {
		"display_window_form_title_label":               "Display Window Form Title",
		"do_you_have_display_window_label":              "Display Window Available",
		"display_window_protected_by_label":             "Display Window Protection",
		"display_window_protected_by_others_label":      "Display Window Protection (Other)",
		"display_window_thickness_label":                "Display Window Thickness",
		"rear_display_window_protected_by_label":        "Rear Display Window Protection",
		"rear_display_window_protected_by_others_label": "Rear Display Window Protection (Other)",
		"rear_display_window_thickness_label":           "Rear Display Window Thickness",
	},
	"add_on_coverage": {
		"director_house_coverage_label":                   "Director House Coverage",
		"director_house_question_label":                   "Director House Question",
		"director_house_question_cctv_label":              "Director House CCTV",
		"director_house_question_safe_label":              "Director House Safe",
		"fidelity_guarantee_insurance_label":              "Fidelity Guarantee Insurance",
		"fidelity_guarantee_total_staff_label":            "Fidelity Guarantee Total Staff",
		"director_house_question_burglar_system_label":    "Director House Burglar System",
		"fidelity_guarantee_insurance_add_coverage_label": "Fidelity Guarantee Add Coverage",
		"overseas_carrying_label":                         "Overseas Carrying",
		"sum_assured_limit_label":                         "Sum Assured Limit",
		"public_exhibitions_label":                        "Public Exhibitions",
		"destination_airport_label":                       "Destination Airport",
		"risk_location_address_label":                     "Risk Location Address",
		"authorized_company_name_label":                   "Authorized Company Name",
		"exhibtion_coverage_question_label":               "Exhibition Coverage Question",
		"outward_entrustment_question_label":              "Outward Entrustment Question",
		"exhibition_insurance_question_label":             "Exhibition Insurance Question",
		"international_coverage_question_label":           "International Coverage Question",
	},
	"claim_history": {
		"claim_history_label": "Claim History Status",
		"description_label":   "Claim Description",
		"year_of_claim_label": "Year of Claim",
		"amount_of_claim_label": "Amount of Claim",
	},
	"premise_sub_limit": {
		"maximum_value_kept_as_display_at_during_business_hours_aw_label":        "Max Display Value (Business Hours) - AW",
		"maximum_value_kept_as_display_at_during_business_hours_1ar_label":       "Max Display Value (Business Hours) - 1AR",
		"maximum_value_kept_as_display_at_during_business_hours_1pd_label":       "Max Display Value (Business Hours) - 1PD",
		"maximum_value_kept_as_display_at_during_business_hours_aws_label":       "Max Display Value (Business Hours) - AWS",
		"maximum_value_kept_as_display_at_during_after_business_hours_aw_label":  "Max Display Value (After Business Hours) - AW",
		"maximum_value_kept_as_display_at_during_after_business_hours_1ar_label": "Max Display Value (After Business Hours) - 1AR",
		"maximum_value_kept_as_display_at_during_after_business_hours_1pd_label": "Max Display Value (After Business Hours) - 1PD",
		"maximum_value_kept_as_display_at_during_after_business_hours_aws_label": "Max Display Value (After Business Hours) - AWS",
	},
	"shop_lifting": {
		"shop_lifting_label": "Shop Lifting Coverage",
	},
	"summary_coverage_values": {
		"overseas_carrying_label":                         "Overseas Carrying",
		"sum_assured_limit_label":                         "Sum Assured Limit",
		"public_exhibitions_label":                        "Public Exhibitions",
		"destination_airport_label":                       "Destination Airport",
		"risk_location_address_label":                     "Risk Location Address",
		"authorized_company_name_label":                   "Authorized Company Name",
		"director_house_coverage_label":                   "Director House Coverage",
		"director_house_question_label":                   "Director House Question",
		"exhibtion_coverage_question_label":               "Exhibition Coverage Question",
		"director_house_question_cctv_label":              "Director House CCTV",
		"director_house_question_safe_label":              "Director House Safe",
		"fidelity_guarantee_insurance_label":              "Fidelity Guarantee Insurance",
		"outward_entrustment_question_label":              "Outward Entrustment Question",
		"exhibition_insurance_question_label":             "Exhibition Insurance Question",
		"fidelity_guarantee_total_staff_label":            "Fidelity Guarantee Total Staff",
		"international_coverage_question_label":           "International Coverage Question",
		"director_house_question_burglar_system_label":    "Director House Burglar System",
		"fidelity_guarantee_insurance_add_coverage_label": "Fidelity Guarantee Add Coverage",
	},
	"sum_assured": {
		"property_label":                   "Property Type",
		"risk_address_label":               "Risk Address",
		"nature_of_business_label":         "Nature of Business",
		"maximum_stock_in_premises_label":  "Maximum Stock in Premises (MYR)",
		"value_of_stock_out_of_safe_label": "Value of Stock Outside Safe (MYR)",
		"maximum_stock_during_transit_label": "Maximum Stock During Transit (MYR)",
		"maximum_cash_in_premises_label":     "Maximum Cash in Premises (MYR)",
		"maximum_foreign_currency_label":     "Maximum Foreign Currency (MYR)",
		"value_of_cash_in_premise_label":     "Value of Cash in Premises (MYR)",
		"value_of_pledged_stock_in_premise_label":         "Value of Pledged Stock (MYR)",
		"value_of_non_pledged_stock_in_premise_label":     "Value of Non-Pledged Stock (MYR)",
		"maximum_stock_foreign_currency_in_premise_label": "Max Foreign Currency in Premises (MYR)",
	},
	"industry_id": {
		"industry_id_label": "Industry",
	},
	"businesstype_id": {
		"businesstype_id_label": "Business Type",
	},
}

// FieldLabel returns the display name for a field within a section. The
// second return is false when the section or field has no display mapping.
func FieldLabel(section, fieldName string) (string, bool) {
	fields, ok := fieldLabels[section]
	if !ok {
		return "", false
	}
	label, ok := fields[fieldName]
	return label, ok
}

// SectionFields returns the ordered display mapping for a section. The map
// itself is shared; callers must not mutate it.
func SectionFields(section string) map[string]string {
	return fieldLabels[section]
}
