package services

// availableFields documents the queryable schema for the parse prompt. The
// model must map natural language onto these exact names.
const availableFields = `
BUSINESS INFO:
- business_name_label: Name of the business
- nature_of_business_label: Type of business (Pawnbroker, Money Changer, etc.)
- businesstype_id_label: Business type ID code
- industry_id_label: Industry ID code
- business_registration_label: Registration number
- person_in_charge_label: Contact person name
- mobile_number_label: Mobile phone number
- office_telephone_label: Office phone
- correspondence_email_label: Email address
- mailing_address_label: Mailing address
- risk_location: Risk/proposal location (city, state, country) - this is a TOP-LEVEL field, not inside fields dict
- user_name: Person/director name associated with the proposal - this is a TOP-LEVEL field

PROPERTY & PREMISES:
- property_label: Property details
- premise_type_label: Type of premises (001=Office building, 002=Shopping centre, 003=Shop house, 004=Others)
- premise_type_others_label: Other premise type details
- floor_materials_label: Floor material (001=Concrete, 002=Tiled, 003=Metal, 004=Wood)
- wall_materials_label: Wall material (001=Concrete, 002=Tiled, 003=Metal, 004=Wood)
- roof_materials_label: Roof material (001=Concrete, 002=Tiled, 003=Metal, 004=Wood)

SECURITY - ALARMS:
- do_you_have_alarm_label: Has alarm system (001=Yes, 002=No)
- type_of_alarm_system_label: Type of alarm (001-010 codes)
- alarm_brand_name_label: Alarm brand
- alarm_model_label: Alarm model
- under_maintenance_contract_label: Alarm under maintenance (001=Yes, 002=No)
- central_monitoring_stations_label: Has central monitoring (001=Yes, 002=No)
- connection_type_label: Alarm connection type
- name_of_cms_company_label: CMS company name

SECURITY - CCTV:
- recording_label: Has CCTV recording (001=Yes, 002=No)
- cctv_maintenance_contract_label: CCTV under maintenance contract (001=Yes, 002=No)
- type_of_back_up_label: Backup type (001-006 codes)
- additional_capability_label: Additional CCTV capability
- retained_period_of_cctv_recording_label: How long CCTV is retained

SECURITY - GUARDS & TRANSIT:
- do_you_use_guards_at_premise_label: Uses guards at premises (001=Yes, 002=No)
- do_you_use_armed_guards_during_transit_label: Uses armed guards (001=Yes, 002=No)
- do_you_use_armoured_vehicle_label: Uses armoured vehicle (001=Yes, 002=No)
- installed_gps_tracker_in_transit_vehicles_label: GPS in vehicles (001=Yes, 002=No)
- installed_gps_tracker_in_transit_bags_label: GPS in bags (001=Yes, 002=No)
- usage_of_jaguar_transit_label: Uses Jaguar transit service (001=Yes, 002=No)

SECURITY - SAFE & STRONG ROOM:
- do_you_have_a_strong_room_label: Has strong room (001=Yes, 002=No)
- time_locking_label: Has time lock (001=Yes, 002=No)
- time_locking_brand_label: Time lock brand
- safe_model_label: Safe model
- safe_brand_name_label: Safe brand
- safe_weight_label: Safe weight
- grade_label: Safe grade (001-008 codes)
- certified_label: Safe certified (001=Yes, 002=No)
- key_combination_code_or_both_label: Key/Combination/Both (001-003)

SECURITY - DOORS:
- door_access_label: Door access type (001-006 codes)
- main_door_details_label: Main door material (001-004 codes)
- inner_door_details_label: Inner door material
- rear_door_label: Rear door type (001-003 codes)

SECURITY - SHOWCASES & WINDOWS:
- do_you_have_counter_showcase_label: Has counter showcase (001=Yes, 002=No)
- counter_showcase_thickness_label: Showcase glass thickness
- do_you_have_display_window_label: Has display window (001=Yes, 002=No)
- display_window_thickness_label: Display window thickness
- do_you_have_wall_showcase_label: Has wall showcase (001=Yes, 002=No)
- wall_showcase_thickness_label: Wall showcase thickness

VALUES & STOCK:
- maximum_stock_in_premises_label: Max stock value in premises
- value_of_stock_out_of_safe_label: Stock value outside safe
- maximum_stock_during_transit_label: Max stock in transit
- value_of_cash_in_premise_label: Cash in premises
- value_of_pledged_stock_in_premise_label: Pledged stock value
- value_of_non_pledged_stock_in_premise_label: Non-pledged stock value
- maximum_stock_foreign_currency_in_premise_label: Foreign currency in premises
- sum_assured_limit_label: Sum assured / coverage limit

CLAIMS & LOSSES:
- claim_history_label: Claims history status (001=No claim within 3 years, 002=Claims within past 3 years)
- description_label: Claim description
- year_of_claim_label: Year of claim
- amount_of_claim_label: Amount of claim

SHOPLIFTING:
- shop_lifting_label: Has shoplifting coverage/cases (1=Yes, 2=No)
  IMPORTANT: For "shoplifting cases" questions, use this field with filter_value="1" for Yes

EMPLOYEES:
- background_checks_for_all_employees_label: Does background checks (001-004 codes)
- fidelity_guarantee_insurance_label: Has fidelity insurance
- fidelity_guarantee_total_staff_label: Total staff covered

PROCEDURES:
- standard_operating_procedure_label: Has SOP (001=Yes, 002=No)
- do_you_keep_detailed_records_of_stock_movements_label: Keeps stock records (001=Yes, 002=No)
- how_often_is_the_stock_check_carried_out_label: Stock check frequency (001-005 codes)
- records_maintained_in_label: How records are maintained (001=Online, 002=Offline)
- the_nearest_police_station_label: Nearest police station distance (001-005 codes)

ADD-ON COVERAGE:
- director_house_coverage_label: Director house coverage details
- director_house_question_label: Director house question (001=Yes, 002=No)
- overseas_carrying_label: Overseas carrying coverage
- public_exhibitions_label: Public exhibitions coverage
`

// queryParsePrompt instructs the model to emit a structured parse as JSON.
// Placeholders: %[1]s = available fields, %[2]s = history section,
// %[3]s = current question.
const queryParsePrompt = `You are a query parser for an insurance proposal database. Parse the user's question and extract structured information.

AVAILABLE FIELDS IN DATABASE:
%[1]s

%[2]s
CURRENT USER QUESTION: %[3]s

Parse this question and output ONLY a JSON object with these fields:
{
    "intent": "ONE of: count, list, lookup, compare",
    "target_fields": ["field1_label", "field2_label"],
    "filter_field": "field_name_label or null",
    "filter_value": "the coded value to filter on, or null",
    "filter_contains": "text to search for in field value or null",
    "quote_id": "MYJADEQTXXX or null",
    "output_fields": ["field1_label", "field2_label"],
    "understood_question": "brief restatement of what user is asking"
}

NATURAL LANGUAGE PHRASE MAPPINGS - ALWAYS use these exact field names when you detect the corresponding natural language phrase in the query:

"type of business" / "what kind of business" / "what business" / "nature of business"
  -> nature_of_business_label (NOT business_name_label)

"door access" / "how do they access" / "entry method" / "access control"
  -> door_access_label

"background check" / "employee check" / "staff check" / "screening"
  -> background_checks_for_all_employees_label

"stock records" / "detailed records" / "keep records" / "record stock" / "stock movements"
  -> do_you_keep_detailed_records_of_stock_movements_label
  (NEVER invent a field name - this is the exact field name, use it verbatim)

"standard operating procedure" / "SOP" / "procedures in place"
  -> standard_operating_procedure_label

"CCTV backup" / "type of backup" / "backup type" / "recording backup"
  -> type_of_back_up_label (NOT director_house_question_cctv_label)

"claim history" / "claims" / "previous claims" / "any claims"
  -> claim_history_label (use in output_fields ONLY, never in filter_field unless explicitly filtering by claim status)

"stock check frequency" / "how often stock" / "stock check" / "checking stock"
  -> how_often_is_the_stock_check_carried_out_label

"nearest police" / "police station" / "distance to police" / "how far police"
  -> the_nearest_police_station_label

"armed guards transit" / "guards during transit" / "transit guards"
  -> do_you_use_armed_guards_during_transit_label (NOT do_you_use_guards_at_premise_label)

"guards at premise" / "guards at shop" / "security guards on site"
  -> do_you_use_guards_at_premise_label

"armoured vehicle" / "armored vehicle" / "security vehicle"
  -> do_you_use_armoured_vehicle_label

"strong room" / "strongroom" / "vault room"
  -> do_you_have_a_strong_room_label

"CCTV maintenance" / "camera maintenance" / "maintenance contract for CCTV"
  -> cctv_maintenance_contract_label

"CCTV retention" / "how long CCTV" / "recording retention" / "how long recordings kept"
  -> retained_period_of_cctv_recording_label

"safe grade" / "grade of safe" / "safe rating"
  -> grade_label

"GPS tracker" / "GPS in bags" / "tracker in bags"
  -> installed_gps_tracker_in_transit_bags_label

"GPS in vehicles" / "tracker in vehicles" / "vehicle GPS"
  -> installed_gps_tracker_in_transit_vehicles_label

"records maintained" / "how records kept" / "online or offline records"
  -> records_maintained_in_label

CRITICAL RULE: You MUST map the query to the exact field names listed above.
NEVER construct a field name by concatenating words from the question itself.
If you are unsure of the field name, pick the closest one from AVAILABLE FIELDS.
An imperfect field name from the list is always better than an invented one.

PARSING RULES:
1. "intent" MUST be exactly ONE word from: count, list, lookup, compare. Never combine them.
2. For "how many" / "count" questions -> intent = "count"
   EXCEPTION: "how much", "how often", "how long" for a SPECIFIC person/business -> intent = "lookup" (these ask for a field VALUE, not a count)
3. For "list all", "what are", "show", "which", "give names" -> intent = "list"
4. If asking "how many" AND also asking for names in the same sentence -> intent = "count" (names will be added automatically)
5. For specific quote questions -> intent = "lookup"
6. For "highest", "lowest" -> intent = "compare"
7. Map natural language to exact field names from the list above
8. For claims/losses questions, use "claim_history_label" and filter_contains
9. For Yes/No fields coded as 001/002: filter_value should be the CODE ("001" for Yes, "002" for No)
   For shop_lifting_label coded as 1/2: filter_value="1" for Yes, filter_value="2" for No
10. output_fields = what fields to show in the answer
11. CRITICAL: If there is CONVERSATION HISTORY above, use it to resolve references like "these", "those", "them", "the above", "their names", etc. The follow-up query MUST inherit the same filter_field and filter_value from the previous query context.
12. Pay close attention to NEGATION words: "don't have", "without", "no", "not" -> these flip the filter value to the opposite.
13. CRITICAL - NEVER set filter_field when the query is asking for a specific entity by name. When filter_contains has a business name or person name, set filter_field=null and filter_value=null. filter_field is ONLY for filtering the entire dataset (e.g., "show all businesses WITH alarm").
14. CRITICAL - NEVER set filter_field to the same field as output_fields unless you are explicitly filtering the whole dataset by that field's value. If query says "what is the claim history of X", output_fields=["claim_history_label"] and filter_field=null, filter_contains="X". Do NOT set filter_field=claim_history_label.
15. CRITICAL - filter_contains must contain EXACTLY the name as stated in the query. If the query says "Rapid FX Money Exchange" then filter_contains must be "Rapid FX Money Exchange". NEVER replace a business name with a person name. NEVER invent names. Copy the exact string from the query.
16. CRITICAL - When a query asks about a SPECIFIC named business or person (filter_contains is set), do NOT also set filter_field and filter_value unless the query explicitly asks for filtering within that business's data.
17. CRITICAL - For location-based queries ("how many in Penang", "proposals located in X"), filter_contains must contain ONLY the location name exactly as stated in the query. NEVER use a business name or person name as filter_contains for location queries. Example: "how many proposals are in Penang?" -> filter_contains="Penang". Example: "proposals in Johor Bahru" -> filter_contains="Johor Bahru".
18. CRITICAL - ZERO TOLERANCE FOR CONTEXT BLEED:
    filter_contains must ALWAYS come from the CURRENT question only.
    NEVER copy filter_contains from a previous conversation turn.
    If the current question asks about "Somesh Das", filter_contains="Somesh Das".
    If the current question asks about "GPS tracker businesses", filter_contains=null.
    Read the CURRENT question. Ignore all previous filter_contains values.
    This rule overrides everything else.

EXAMPLES:
- "How many have CCTV maintenance?" -> {"intent": "count", "target_fields": ["cctv_maintenance_contract_label"], "filter_field": "cctv_maintenance_contract_label", "filter_value": "001", "output_fields": ["business_name_label"], "understood_question": "Count proposals with CCTV maintenance (=Yes/001)"}
- "How many businesses have shoplifting cases?" -> {"intent": "count", "target_fields": ["shop_lifting_label"], "filter_field": "shop_lifting_label", "filter_value": "1", "output_fields": ["business_name_label"], "understood_question": "Count proposals with shoplifting (shop_lifting_label=1)"}
- "How many businesses don't have shoplifting cases?" -> {"intent": "count", "target_fields": ["shop_lifting_label"], "filter_field": "shop_lifting_label", "filter_value": "2", "output_fields": ["business_name_label"], "understood_question": "Count proposals WITHOUT shoplifting (shop_lifting_label=2)"}
- "Which businesses have shoplifting?" -> {"intent": "list", "target_fields": ["shop_lifting_label"], "filter_field": "shop_lifting_label", "filter_value": "1", "output_fields": ["business_name_label"], "understood_question": "List proposals with shoplifting coverage"}
- "How many have alarms?" -> {"intent": "count", "target_fields": ["do_you_have_alarm_label"], "filter_field": "do_you_have_alarm_label", "filter_value": "001", "output_fields": ["business_name_label"], "understood_question": "Count proposals with alarms (=Yes/001)"}
- "How many don't have alarms?" -> {"intent": "count", "target_fields": ["do_you_have_alarm_label"], "filter_field": "do_you_have_alarm_label", "filter_value": "002", "output_fields": ["business_name_label"], "understood_question": "Count proposals WITHOUT alarms (=No/002)"}
- "What is the business name of MYJADEQT001?" -> {"intent": "lookup", "quote_id": "MYJADEQT001", "output_fields": ["business_name_label"], "understood_question": "Get business name for MYJADEQT001"}
- "How many proposals are in shopping centres?" -> {"intent": "count", "target_fields": ["premise_type_label"], "filter_field": "premise_type_label", "filter_value": "002", "output_fields": ["business_name_label"], "understood_question": "Count proposals in shopping centre premises (premise_type_label=002)"}
- "How many proposals are located in Johor Bahru?" -> {"intent": "count", "target_fields": ["risk_location"], "filter_field": null, "filter_value": null, "filter_contains": "Johor Bahru", "output_fields": ["business_name_label"], "understood_question": "Count proposals located in Johor Bahru"}
- "Which businesses are in Kuala Lumpur?" -> {"intent": "list", "target_fields": ["risk_location"], "filter_field": null, "filter_value": null, "filter_contains": "Kuala Lumpur", "output_fields": ["business_name_label"], "understood_question": "List proposals in Kuala Lumpur"}
- "What is the house coverage for Suresh Kumar?" -> {"intent": "lookup", "target_fields": ["director_house_coverage_label"], "filter_field": null, "filter_value": null, "filter_contains": "Suresh Kumar", "output_fields": ["director_house_coverage_label"], "understood_question": "Get director house coverage for person named Suresh Kumar"}
- "What type of business does City FX Exchange have?" -> {"intent": "lookup", "target_fields": ["nature_of_business_label"], "filter_field": null, "filter_value": null, "filter_contains": "City FX Exchange", "output_fields": ["nature_of_business_label"], "understood_question": "Get business type for City FX Exchange"}
- "Does Mehta Pawn Services have a strong room?" -> {"intent": "lookup", "target_fields": ["do_you_have_a_strong_room_label"], "filter_field": null, "filter_value": null, "filter_contains": "Mehta Pawn Services", "output_fields": ["do_you_have_a_strong_room_label"], "understood_question": "Check if Mehta Pawn Services has a strong room"}
- "What is the alarm brand for MYJADEQT003?" -> {"intent": "lookup", "quote_id": "MYJADEQT003", "output_fields": ["alarm_brand_name_label"], "understood_question": "Get alarm brand for MYJADEQT003"}
- "How often is the stock check carried out for Suresh Kumar?" -> {"intent": "lookup", "target_fields": ["how_often_is_the_stock_check_carried_out_label"], "filter_field": null, "filter_value": null, "filter_contains": "Suresh Kumar", "output_fields": ["how_often_is_the_stock_check_carried_out_label"], "understood_question": "Get stock check frequency for Suresh Kumar"}
- "How much cash does Heritage Gold & Jewels keep in premise?" -> {"intent": "lookup", "target_fields": ["value_of_cash_in_premise_label"], "filter_field": null, "filter_value": null, "filter_contains": "Heritage Gold & Jewels", "output_fields": ["value_of_cash_in_premise_label"], "understood_question": "Get cash in premise value for Heritage Gold & Jewels"}
- "What type of business does Suresh Kumar run?" -> {"intent": "lookup", "target_fields": ["nature_of_business_label"], "filter_field": null, "filter_value": null, "filter_contains": "Suresh Kumar", "output_fields": ["nature_of_business_label"], "understood_question": "Get nature of business for Suresh Kumar"}
- "Does Heritage Gold and Jewels have a CCTV maintenance contract?" -> {"intent": "lookup", "target_fields": ["cctv_maintenance_contract_label"], "filter_field": null, "filter_value": null, "filter_contains": "Heritage Gold and Jewels", "output_fields": ["cctv_maintenance_contract_label"], "understood_question": "Check CCTV maintenance contract for Heritage Gold and Jewels"}
- "What is the door access type used by Global Money Exchange?" -> {"intent": "lookup", "target_fields": ["door_access_label"], "filter_field": null, "filter_value": null, "filter_contains": "Global Money Exchange", "output_fields": ["door_access_label"], "understood_question": "Get door access type for Global Money Exchange"}
- "Does Rapid FX Money Exchange use armed guards during transit?" -> {"intent": "lookup", "target_fields": ["do_you_use_armed_guards_during_transit_label"], "filter_field": null, "filter_value": null, "filter_contains": "Rapid FX Money Exchange", "output_fields": ["do_you_use_armed_guards_during_transit_label"], "understood_question": "Check if Rapid FX Money Exchange uses armed guards during transit"}
- "What background checks does LuxGold Jewellers do?" -> {"intent": "lookup", "target_fields": ["background_checks_for_all_employees_label"], "filter_field": null, "filter_value": null, "filter_contains": "LuxGold Jewellers", "output_fields": ["background_checks_for_all_employees_label"], "understood_question": "Get background check details for LuxGold Jewellers"}
- "What is the claim history of Heritage Gold?" -> {"intent": "lookup", "target_fields": ["claim_history_label"], "filter_field": null, "filter_value": null, "filter_contains": "Heritage Gold", "output_fields": ["claim_history_label"], "understood_question": "Get claim history for Heritage Gold"}
- "Does Royal Gems keep detailed records of stock movements?" -> {"intent": "lookup", "target_fields": ["do_you_keep_detailed_records_of_stock_movements_label"], "filter_field": null, "filter_value": null, "filter_contains": "Royal Gems", "output_fields": ["do_you_keep_detailed_records_of_stock_movements_label"], "understood_question": "Check if Royal Gems keeps detailed records of stock movements"}
- "What type of CCTV backup does Secure Pawn use?" -> {"intent": "lookup", "target_fields": ["type_of_back_up_label"], "filter_field": null, "filter_value": null, "filter_contains": "Secure Pawn", "output_fields": ["type_of_back_up_label"], "understood_question": "Get CCTV backup type for Secure Pawn"}

IMPORTANT REMINDERS:
- intent must be EXACTLY one of: count, list, lookup, compare. NEVER output "count|list" or any combined form.
- For shoplifting: filter_value="1" means HAS shoplifting, filter_value="2" means DOES NOT have shoplifting.
- For 001/002 coded fields: "001" = Yes, "002" = No.
- NEGATION flips the value: "don't have X" / "without X" / "no X" means filter on the NO/negative code.
- For LOCATION/ADDRESS queries ("in Johor Bahru", "located in KL"), use filter_contains with the location name. Do NOT use filter_value for locations.
- For TEXT SEARCH queries (searching by name, address, company), use filter_contains for substring matching.
- ENTITY LOOKUP: When asking "what is FIELD for PERSON/BUSINESS?", put the PERSON/BUSINESS name in filter_contains, put the FIELD in output_fields. Do NOT put the field in filter_field unless you are filtering BY that field's value.
- filter_field + filter_value are for filtering rows (e.g., alarm=001 means Yes). Do NOT use filter_field when filter_value is null.
- When the user asks about a specific PERSON or BUSINESS NAME (not a quote ID), use filter_contains with that name and intent="lookup".
- "how often", "how much", "how long" + a PERSON/BUSINESS name = intent "lookup" (NOT "count"). These ask for a specific field VALUE for a named entity.

Output ONLY the JSON, no explanation.`
